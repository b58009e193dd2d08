package crime

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crimewatch/crimewatch/pkg/nn"
)

func TestReportCriticalForArmedPerson(t *testing.T) {
	detections := append(emptyFrames(5),
		frame(5, obj("knife", 0.8, 0, 0), obj("person", 0.9, 50, 0)),
	)
	report := GenerateCrimeReport(detections, nil, nil)
	require.True(t, report.CrimeDetected)
	require.Equal(t, SeverityCritical, report.OverallSeverity)
	require.Len(t, report.CrimeIndicators, 1)
	ind := report.CrimeIndicators[0]
	require.Equal(t, IndicatorWeaponThreat, ind.Type)
	require.Equal(t, SeverityCritical, ind.Severity)
	require.InDelta(t, 0.9, ind.Confidence, 1e-5)
	require.Contains(t, report.Recommendation, "CRITICAL ALERT")
}

func TestReportSafeOnEmptyInput(t *testing.T) {
	report := GenerateCrimeReport(nil, nil, nil)
	require.False(t, report.CrimeDetected)
	require.Equal(t, SeveritySafe, report.OverallSeverity)
	require.Empty(t, report.CrimeIndicators)
	require.Contains(t, report.Recommendation, "SAFE")

	require.NotNil(t, report.WeaponThreat)
	require.NotNil(t, report.Violence)
	require.NotNil(t, report.Theft)
	require.NotNil(t, report.Suspicion)
}

func TestReportTheftIndicator(t *testing.T) {
	detections := emptyFrames(10)
	detections[0].Objects = []nn.Detection{obj("backpack", 0.8, 10, 10)}
	detections[1].Objects = []nn.Detection{obj("backpack", 0.8, 12, 10)}

	report := GenerateCrimeReport(detections, nil, nil)
	require.Len(t, report.CrimeIndicators, 1)
	ind := report.CrimeIndicators[0]
	require.Equal(t, IndicatorTheftOrRobbery, ind.Type)
	require.Equal(t, SeverityMedium, ind.Severity)
	require.InDelta(t, 0.64, ind.Confidence, 1e-5)
	// theft_or_robbery carries the default weight: 0.64 * 0.5 = 0.32.
	require.Equal(t, SeverityLow, report.OverallSeverity)
}

func TestIndicatorOrderIsFixed(t *testing.T) {
	detections := emptyFrames(10)
	detections[0].Objects = []nn.Detection{obj("backpack", 0.8, 10, 10)}
	detections[1].Objects = []nn.Detection{
		obj("backpack", 0.8, 12, 10),
		obj("knife", 0.8, 100, 10),
	}
	actions := []nn.ActionClip{
		clip(0, act("punching person", 0.9, true)),
		clip(1, act("kicking person", 0.9, true)),
	}
	report := GenerateCrimeReport(detections, actions, nil)
	require.GreaterOrEqual(t, len(report.CrimeIndicators), 3)
	require.Equal(t, IndicatorWeaponThreat, report.CrimeIndicators[0].Type)
	require.Equal(t, IndicatorViolentAssault, report.CrimeIndicators[1].Type)
	require.Equal(t, IndicatorTheftOrRobbery, report.CrimeIndicators[2].Type)
}

func TestOverallSeverityBuckets(t *testing.T) {
	cfg := DefaultConfig()
	severity := func(indicators ...CrimeIndicator) Severity {
		return overallSeverity(&cfg.Report, indicators)
	}
	require.Equal(t, SeveritySafe, severity())
	// weapon_threat weighs 1.0.
	require.Equal(t, SeverityCritical, severity(CrimeIndicator{Type: IndicatorWeaponThreat, Confidence: 0.85}))
	// violent_assault weighs 0.95: 0.65 * 0.95 = 0.6175.
	require.Equal(t, SeverityHigh, severity(CrimeIndicator{Type: IndicatorViolentAssault, Confidence: 0.65}))
	// Unknown types fall back to weight 0.5.
	require.Equal(t, SeverityMedium, severity(CrimeIndicator{Type: "unheard_of", Confidence: 0.9}))
	require.Equal(t, SeverityLow, severity(CrimeIndicator{Type: IndicatorSuspiciousActivity, Confidence: 0.55}))
	// The strongest indicator wins.
	require.Equal(t, SeverityCritical, severity(
		CrimeIndicator{Type: IndicatorSuspiciousActivity, Confidence: 0.55},
		CrimeIndicator{Type: IndicatorWeaponThreat, Confidence: 0.95},
	))
}
