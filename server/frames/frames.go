// Package frames extracts still frames from uploaded videos with
// ffmpeg, one directory of numbered JPEGs per video hash.
package frames

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cyclopcam/logs"

	"github.com/crimewatch/crimewatch/pkg/shell"
)

const (
	DefaultFPS     = 3
	ExtractTimeout = 5 * time.Minute
)

type Extractor struct {
	log  logs.Log
	root string
	fps  int
}

// NewExtractor stores frames under root/<videoHash>/. fps 0 means
// DefaultFPS.
func NewExtractor(log logs.Log, root string, fps int) (*Extractor, error) {
	if fps == 0 {
		fps = DefaultFPS
	}
	if err := os.MkdirAll(root, 0770); err != nil {
		return nil, fmt.Errorf("Failed to create frames directory '%v': %w", root, err)
	}
	return &Extractor{
		log:  log,
		root: root,
		fps:  fps,
	}, nil
}

func (e *Extractor) Dir(videoHash string) string {
	return filepath.Join(e.root, videoHash)
}

// Extract decodes videoPath into numbered JPEG frames and returns their
// paths in frame order. When the primary ffmpeg invocation fails, we
// retry once at 1 fps, which copes with videos whose timestamps confuse
// the fps filter.
func (e *Extractor) Extract(ctx context.Context, videoPath, videoHash string) ([]string, error) {
	dir := e.Dir(videoHash)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return nil, err
	}
	pattern := filepath.Join(dir, "frame_%05d.jpg")

	ctx, cancel := context.WithTimeout(ctx, ExtractTimeout)
	defer cancel()

	_, err := shell.RunCtx(ctx, "ffmpeg",
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=%v", e.fps),
		"-vsync", "vfr",
		"-q:v", "2",
		"-start_number", "0",
		pattern,
		"-y",
		"-loglevel", "error")
	if err != nil {
		e.log.Errorf("ffmpeg extraction failed for %v: %v. Retrying at 1 fps", videoPath, err)
		_, fallbackErr := shell.RunCtx(ctx, "ffmpeg",
			"-i", videoPath,
			"-vf", "fps=1",
			"-q:v", "3",
			pattern,
			"-y")
		if fallbackErr != nil {
			return nil, fmt.Errorf("Failed to extract frames from video: %w", err)
		}
		e.log.Infof("Fallback extraction at 1 fps succeeded for %v", videoPath)
	}

	framePaths, err := e.List(videoHash)
	if err != nil {
		return nil, err
	}
	if len(framePaths) == 0 {
		return nil, fmt.Errorf("No frames extracted from %v. Video may be corrupted, empty, or in an unsupported format", videoPath)
	}
	e.log.Infof("Extracted %v frames from %v", len(framePaths), videoPath)
	return framePaths, nil
}

// List returns the extracted frame paths for videoHash, sorted in
// frame order.
func (e *Extractor) List(videoHash string) ([]string, error) {
	entries, err := os.ReadDir(e.Dir(videoHash))
	if err != nil {
		return nil, err
	}
	framePaths := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, "frame_") && strings.HasSuffix(name, ".jpg") {
			framePaths = append(framePaths, filepath.Join(e.Dir(videoHash), name))
		}
	}
	sort.Strings(framePaths)
	return framePaths, nil
}

// Cleanup removes the frame directory for videoHash.
func (e *Extractor) Cleanup(videoHash string) error {
	return os.RemoveAll(e.Dir(videoHash))
}
