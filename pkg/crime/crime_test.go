package crime

import (
	"fmt"

	"github.com/crimewatch/crimewatch/pkg/nn"
)

// Test fixtures shared by the analyzer tests.

func frame(idx int, objects ...nn.Detection) nn.FrameDetections {
	return nn.FrameDetections{
		FrameIndex: idx,
		Frame:      fmt.Sprintf("frame_%04d.jpg", idx),
		Objects:    objects,
	}
}

// obj makes a 40x40 detection whose top-left corner is at (x, y).
func obj(label string, conf, x, y float32) nn.Detection {
	return nn.Detection{
		Label:      label,
		Confidence: conf,
		Box:        nn.MakeRect(x, y, x+40, y+40),
	}
}

func clip(idx int, actions ...nn.ActionPrediction) nn.ActionClip {
	return nn.ActionClip{
		ClipIndex:  idx,
		ClipType:   nn.ClipMiddle,
		FrameRange: nn.FrameRange{Start: idx * 8, End: idx*8 + 8},
		TopActions: actions,
	}
}

func act(label string, prob float32, crimeRelevant bool) nn.ActionPrediction {
	return nn.ActionPrediction{
		Label:         label,
		Probability:   prob,
		CrimeRelevant: crimeRelevant,
	}
}

// emptyFrames makes n frames with no detections.
func emptyFrames(n int) []nn.FrameDetections {
	frames := make([]nn.FrameDetections, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, frame(i))
	}
	return frames
}
