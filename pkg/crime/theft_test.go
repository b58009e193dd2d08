package crime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crimewatch/crimewatch/pkg/nn"
)

func TestVanishingBackpackScoresTheft(t *testing.T) {
	// Backpack visible in frames 0 and 1 of a 10 frame video, then gone.
	detections := emptyFrames(10)
	detections[0].Objects = []nn.Detection{obj("backpack", 0.8, 10, 10)}
	detections[1].Objects = []nn.Detection{obj("backpack", 0.8, 12, 10)}

	report := AnalyzeTheft(detections, nil, nil)
	require.True(t, report.Detected)
	require.Len(t, report.ValuableDisappearances, 1)
	d := report.ValuableDisappearances[0]
	require.Equal(t, "backpack", d.Item)
	require.Equal(t, 0, d.FirstSeen)
	require.Equal(t, 1, d.LastSeen)
	require.InDelta(t, 0.8, d.SuspicionScore, 1e-5)
	// Disappearance only: 0.8 * 0.8 = 0.64.
	require.InDelta(t, 0.64, report.TheftProbability, 1e-5)
}

func TestPersistentItemIsNotTheft(t *testing.T) {
	detections := emptyFrames(10)
	for i := range detections {
		detections[i].Objects = []nn.Detection{obj("laptop", 0.9, 10, 10)}
	}
	report := AnalyzeTheft(detections, nil, nil)
	require.False(t, report.Detected)
	require.Zero(t, report.TheftProbability)
}

func TestSingleSightingIsNotTheft(t *testing.T) {
	detections := emptyFrames(10)
	detections[3].Objects = []nn.Detection{obj("handbag", 0.7, 10, 10)}
	report := AnalyzeTheft(detections, nil, nil)
	require.False(t, report.Detected)
}

func TestTheftActionAlone(t *testing.T) {
	actions := []nn.ActionClip{
		clip(0, act("stealing purse", 0.5, true)),
	}
	report := AnalyzeTheft(emptyFrames(10), actions, nil)
	require.True(t, report.Detected)
	require.Len(t, report.TheftActions, 1)
	// Action only: 0.5 * 0.7 = 0.35.
	require.InDelta(t, 0.35, report.TheftProbability, 1e-5)
}

func TestCombinedSignalsBoostAndClamp(t *testing.T) {
	detections := emptyFrames(10)
	detections[0].Objects = []nn.Detection{obj("backpack", 0.8, 10, 10)}
	detections[1].Objects = []nn.Detection{obj("backpack", 0.8, 12, 10)}
	actions := []nn.ActionClip{
		clip(0, act("snatching bag", 0.9, true)),
	}
	report := AnalyzeTheft(detections, actions, nil)
	// (0.8 + 0.9) / 2 * 1.2 = 1.02, clamped to 1.
	require.InDelta(t, 1.0, report.TheftProbability, 1e-5)
}
