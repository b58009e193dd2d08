package crime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crimewatch/crimewatch/pkg/nn"
)

func TestWeaponCloseToPersonIsCritical(t *testing.T) {
	// Knife center and person center are 50 pixels apart.
	detections := append(emptyFrames(5),
		frame(5, obj("knife", 0.8, 0, 0), obj("person", 0.9, 50, 0)),
	)
	report := AnalyzeWeaponThreat(detections, nil, nil)
	require.True(t, report.Detected)
	require.Equal(t, ThreatCritical, report.ThreatLevel)
	require.Len(t, report.WeaponFrames, 1)
	require.Equal(t, 1, report.WeaponFrames[0].WeaponCount)
	require.Equal(t, 1, report.WeaponFrames[0].PersonCount)
	require.Len(t, report.ProximityAlerts, 1)
	require.InDelta(t, 50, report.ProximityAlerts[0].Distance, 1e-4)
	require.Equal(t, "knife", report.ProximityAlerts[0].WeaponType)
}

func TestWeaponAloneIsMedium(t *testing.T) {
	detections := []nn.FrameDetections{
		frame(0, obj("knife", 0.8, 0, 0)),
	}
	report := AnalyzeWeaponThreat(detections, nil, nil)
	require.True(t, report.Detected)
	require.Equal(t, ThreatMedium, report.ThreatLevel)
	require.Empty(t, report.ProximityAlerts)
}

func TestWeaponInManyFramesIsHigh(t *testing.T) {
	detections := []nn.FrameDetections{
		frame(0, obj("knife", 0.8, 0, 0)),
		frame(1, obj("knife", 0.8, 0, 0)),
		frame(2, obj("knife", 0.8, 0, 0)),
	}
	report := AnalyzeWeaponThreat(detections, nil, nil)
	require.Equal(t, ThreatHigh, report.ThreatLevel)
}

func TestWeaponActionEscalatesToCritical(t *testing.T) {
	detections := []nn.FrameDetections{
		frame(0, obj("knife", 0.8, 0, 0)),
	}
	actions := []nn.ActionClip{
		clip(0, act("aiming gun", 0.3, true)),
	}
	report := AnalyzeWeaponThreat(detections, actions, nil)
	require.Equal(t, ThreatCritical, report.ThreatLevel)
	require.Len(t, report.WeaponActions, 1)
	require.Equal(t, "aiming gun", report.WeaponActions[0].Action)
}

func TestNoWeaponsMeansNoThreat(t *testing.T) {
	detections := []nn.FrameDetections{
		frame(0, obj("person", 0.9, 0, 0)),
		frame(1, obj("dog", 0.7, 100, 100)),
	}
	report := AnalyzeWeaponThreat(detections, nil, nil)
	require.False(t, report.Detected)
	require.Equal(t, ThreatNone, report.ThreatLevel)
	require.Empty(t, report.WeaponFrames)
}

// A weapon far from any person stays below critical even though the
// nearest-person distance is recorded.
func TestDistantPersonDoesNotEscalate(t *testing.T) {
	detections := []nn.FrameDetections{
		frame(0, obj("knife", 0.8, 0, 0), obj("person", 0.9, 600, 0)),
	}
	report := AnalyzeWeaponThreat(detections, nil, nil)
	require.Equal(t, ThreatMedium, report.ThreatLevel)
	require.Empty(t, report.ProximityAlerts)
}
