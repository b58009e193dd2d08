// Package nnclient talks to the external inference service that hosts
// the object detection and action recognition models.
package nnclient

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/crimewatch/crimewatch/pkg/nn"
	"github.com/crimewatch/crimewatch/pkg/requests"
	"github.com/cyclopcam/logs"
)

type Client struct {
	log logs.Log
	url string // Base URL of the inference service, eg "http://localhost:9000"
}

func NewClient(log logs.Log, url string) *Client {
	return &Client{
		log: log,
		url: strings.TrimSuffix(url, "/"),
	}
}

type detectRequest struct {
	FrameIndex int    `json:"frameIndex"`
	Image      string `json:"image"` // base64 JPEG
}

type recognizeRequest struct {
	ClipIndex  int           `json:"clipIndex"`
	ClipType   nn.ClipType   `json:"clipType"`
	FrameRange nn.FrameRange `json:"frameRange"`
	Images     []string      `json:"images"` // base64 JPEGs, in frame order
}

func (c *Client) DetectObjects(ctx context.Context, framePath string, frameIndex int) (*nn.FrameDetections, error) {
	img, err := encodeFrame(framePath)
	if err != nil {
		return nil, err
	}
	req := detectRequest{
		FrameIndex: frameIndex,
		Image:      img,
	}
	fd, err := requests.RequestJSONCtx[nn.FrameDetections](ctx, "POST", c.url+"/api/detect", &req)
	if err != nil {
		return nil, err
	}
	fd.FrameIndex = frameIndex
	fd.Frame = filepath.Base(framePath)
	return fd, nil
}

func (c *Client) RecognizeClip(ctx context.Context, framePaths []string, clip nn.ActionClip) (*nn.ActionClip, error) {
	req := recognizeRequest{
		ClipIndex:  clip.ClipIndex,
		ClipType:   clip.ClipType,
		FrameRange: clip.FrameRange,
	}
	for _, p := range framePaths {
		img, err := encodeFrame(p)
		if err != nil {
			return nil, err
		}
		req.Images = append(req.Images, img)
	}
	out, err := requests.RequestJSONCtx[nn.ActionClip](ctx, "POST", c.url+"/api/recognize", &req)
	if err != nil {
		return nil, err
	}
	out.ClipIndex = clip.ClipIndex
	out.ClipType = clip.ClipType
	out.FrameRange = clip.FrameRange
	return out, nil
}

func encodeFrame(framePath string) (string, error) {
	raw, err := os.ReadFile(framePath)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
