package crime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crimewatch/crimewatch/pkg/nn"
)

func TestLoiteringDetected(t *testing.T) {
	detections := make([]nn.FrameDetections, 0, 10)
	for i := 0; i < 10; i++ {
		detections = append(detections, frame(i, obj("person", 0.9, 10, 10)))
	}
	report := AnalyzeSuspicion(detections, nil, nil)
	require.True(t, report.Detected)
	require.Len(t, report.Patterns, 1)
	require.Equal(t, PatternLoitering, report.Patterns[0].Type)
	// Confidence caps at 0.7 even with a person in every frame.
	require.InDelta(t, 0.7, report.Patterns[0].Confidence, 1e-5)
	require.InDelta(t, 0.25, report.SuspicionScore, 1e-5)
}

func TestBriefPresenceIsNotLoitering(t *testing.T) {
	detections := emptyFrames(10)
	detections[0].Objects = []nn.Detection{obj("person", 0.9, 10, 10)}
	detections[1].Objects = []nn.Detection{obj("person", 0.9, 10, 10)}
	report := AnalyzeSuspicion(detections, nil, nil)
	require.False(t, report.Detected)
}

func TestSuspiciousActionPattern(t *testing.T) {
	actions := []nn.ActionClip{
		clip(2, act("sneaking around", 0.45, true)),
	}
	report := AnalyzeSuspicion(emptyFrames(10), actions, nil)
	require.True(t, report.Detected)
	require.Equal(t, PatternSuspiciousAction, report.Patterns[0].Type)
	require.Equal(t, "sneaking around", report.Patterns[0].Action)
	require.Equal(t, 2, report.Patterns[0].ClipIndex)
}

func TestGroupLoitering(t *testing.T) {
	detections := emptyFrames(10)
	for i := 0; i < 6; i++ {
		detections[i].Objects = []nn.Detection{
			obj("person", 0.9, 0, 0),
			obj("person", 0.9, 100, 0),
			obj("person", 0.9, 200, 0),
		}
	}
	report := AnalyzeSuspicion(detections, nil, nil)
	require.True(t, report.Detected)
	require.Equal(t, PatternGroupLoitering, report.Patterns[0].Type)
	require.InDelta(t, 0.65, report.Patterns[0].Confidence, 1e-5)
}

func TestSuspicionScoreSaturates(t *testing.T) {
	// Loitering + group + three suspicious actions is five patterns,
	// but the score clamps at 1.
	detections := make([]nn.FrameDetections, 0, 10)
	for i := 0; i < 10; i++ {
		detections = append(detections, frame(i,
			obj("person", 0.9, 0, 0),
			obj("person", 0.9, 100, 0),
			obj("person", 0.9, 200, 0),
		))
	}
	actions := []nn.ActionClip{
		clip(0, act("lurking in shadows", 0.4, true)),
		clip(1, act("hiding behind wall", 0.5, true)),
		clip(2, act("stalking person", 0.6, true)),
	}
	report := AnalyzeSuspicion(detections, actions, nil)
	require.Len(t, report.Patterns, 5)
	require.InDelta(t, 1.0, report.SuspicionScore, 1e-5)
	require.Contains(t, report.Assessment, "HIGHLY suspicious")
}
