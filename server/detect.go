package server

import (
	"context"

	"github.com/crimewatch/crimewatch/pkg/nn"
)

// ObjectDetector finds objects in a single video frame. The models are
// external black boxes. Implementations must be safe for concurrent use.
type ObjectDetector interface {
	DetectObjects(ctx context.Context, framePath string, frameIndex int) (*nn.FrameDetections, error)
}

// ActionRecognizer scores a clip of frames against a fixed action
// vocabulary. The clip argument carries the planned index, type and
// frame range, and the implementation fills in TopActions.
type ActionRecognizer interface {
	RecognizeClip(ctx context.Context, framePaths []string, clip nn.ActionClip) (*nn.ActionClip, error)
}
