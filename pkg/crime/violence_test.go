package crime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crimewatch/crimewatch/pkg/nn"
)

func TestViolenceScoreFormula(t *testing.T) {
	actions := []nn.ActionClip{
		clip(0, act("punching person", 0.5, true)),
	}
	report := AnalyzeViolence(actions, nil, nil)
	require.True(t, report.Detected)
	require.Len(t, report.ViolentActions, 1)
	// punch is a high-tier keyword: intensity 0.5 * 1.5 = 0.75,
	// score 0.75*0.5 + min(1, 1*0.2)*0.3 + 0*0.2 = 0.435.
	require.InDelta(t, 0.75, report.ViolentActions[0].Intensity, 1e-5)
	require.InDelta(t, 0.435, report.ViolenceScore, 1e-5)
	require.Equal(t, IntensityHigh, report.IntensityLevel)
}

func TestExtremeKeywordsClampIntensity(t *testing.T) {
	actions := []nn.ActionClip{
		clip(0, act("strangling victim", 0.6, true)),
	}
	report := AnalyzeViolence(actions, nil, nil)
	// 0.6 * 2.0 clamps to 1.
	require.InDelta(t, 1.0, report.ViolentActions[0].Intensity, 1e-5)
}

func TestNonViolentActionsIgnored(t *testing.T) {
	actions := []nn.ActionClip{
		clip(0, act("walking the dog", 0.9, false), act("reading book", 0.8, false)),
	}
	report := AnalyzeViolence(actions, nil, nil)
	require.False(t, report.Detected)
	require.Zero(t, report.ViolenceScore)
	require.Equal(t, IntensityLow, report.IntensityLevel)
}

func TestViolentActionsSortedByIntensity(t *testing.T) {
	actions := []nn.ActionClip{
		clip(0, act("pushing and fighting", 0.4, true)),
		clip(1, act("choking person", 0.6, true)),
	}
	report := AnalyzeViolence(actions, nil, nil)
	require.Len(t, report.ViolentActions, 2)
	require.Equal(t, "choking person", report.ViolentActions[0].Action)
	require.GreaterOrEqual(t, report.ViolentActions[0].Intensity, report.ViolentActions[1].Intensity)
}

func TestMultiPersonFramesRaiseScore(t *testing.T) {
	actions := []nn.ActionClip{
		clip(0, act("fighting", 0.5, true)),
	}
	solo := []nn.FrameDetections{
		frame(0, obj("person", 0.9, 0, 0)),
	}
	crowd := []nn.FrameDetections{
		frame(0, obj("person", 0.9, 0, 0), obj("person", 0.9, 100, 0)),
	}
	soloReport := AnalyzeViolence(actions, solo, nil)
	crowdReport := AnalyzeViolence(actions, crowd, nil)
	require.Greater(t, crowdReport.ViolenceScore, soloReport.ViolenceScore)
	require.InDelta(t, 1.0, crowdReport.MultiPersonFrameRatio, 1e-5)
}
