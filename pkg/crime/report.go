package crime

import (
	"sync"

	"github.com/crimewatch/crimewatch/pkg/nn"
)

// Crime indicator types.
const (
	IndicatorWeaponThreat       = "weapon_threat"
	IndicatorViolentAssault     = "violent_assault"
	IndicatorTheftOrRobbery     = "theft_or_robbery"
	IndicatorSuspiciousActivity = "suspicious_activity"
)

// severityWeights scale indicator confidences when computing the
// overall severity. Types not listed here weigh 0.5.
var severityWeights = map[string]float32{
	"weapon_threat":       1.0,
	"violent_assault":     0.95,
	"armed_robbery":       0.90,
	"physical_fight":      0.85,
	"theft_in_progress":   0.80,
	"vandalism":           0.70,
	"suspicious_activity": 0.60,
	"trespassing":         0.50,
}

const defaultSeverityWeight = 0.5

// CrimeIndicator is one aggregated signal that made it into the report.
type CrimeIndicator struct {
	Type       string   `json:"type"`
	Severity   Severity `json:"severity"`
	Confidence float32  `json:"confidence"`
}

// CrimeReport is the aggregate of all four analyzers.
type CrimeReport struct {
	OverallSeverity Severity            `json:"overallSeverity"`
	CrimeDetected   bool                `json:"crimeDetected"`
	CrimeIndicators []CrimeIndicator    `json:"crimeIndicators"`
	WeaponThreat    *WeaponThreatReport `json:"weaponThreatAnalysis"`
	Violence        *ViolenceReport     `json:"violenceAnalysis"`
	Theft           *TheftReport        `json:"theftAnalysis"`
	Suspicion       *SuspicionReport    `json:"suspiciousBehaviorAnalysis"`
	Recommendation  string              `json:"recommendation"`
}

// GenerateCrimeReport runs all four analyzers and aggregates their
// results into indicators and an overall severity. The analyzers are
// independent, so they run concurrently; indicator order is fixed at
// weapon, violence, theft, suspicion. A nil cfg uses DefaultConfig.
func GenerateCrimeReport(detections []nn.FrameDetections, actions []nn.ActionClip, cfg *Config) *CrimeReport {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	report := &CrimeReport{}
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		report.WeaponThreat = AnalyzeWeaponThreat(detections, actions, cfg)
	}()
	go func() {
		defer wg.Done()
		report.Violence = AnalyzeViolence(actions, detections, cfg)
	}()
	go func() {
		defer wg.Done()
		report.Theft = AnalyzeTheft(detections, actions, cfg)
	}()
	go func() {
		defer wg.Done()
		report.Suspicion = AnalyzeSuspicion(detections, actions, cfg)
	}()
	wg.Wait()

	rc := &cfg.Report
	indicators := []CrimeIndicator{}
	if report.WeaponThreat.Detected {
		indicators = append(indicators, CrimeIndicator{
			Type:       IndicatorWeaponThreat,
			Severity:   report.WeaponThreat.ThreatLevel.Severity(),
			Confidence: rc.WeaponIndicatorConfidence,
		})
	}
	if report.Violence.Detected && report.Violence.ViolenceScore > rc.ViolenceIndicatorScore {
		indicators = append(indicators, CrimeIndicator{
			Type:       IndicatorViolentAssault,
			Severity:   report.Violence.IntensityLevel.Severity(),
			Confidence: report.Violence.ViolenceScore,
		})
	}
	if report.Theft.Detected && report.Theft.TheftProbability > rc.TheftIndicatorProbability {
		severity := SeverityMedium
		if report.Theft.TheftProbability > cfg.Theft.HighProbability {
			severity = SeverityHigh
		}
		indicators = append(indicators, CrimeIndicator{
			Type:       IndicatorTheftOrRobbery,
			Severity:   severity,
			Confidence: report.Theft.TheftProbability,
		})
	}
	if report.Suspicion.Detected && report.Suspicion.SuspicionScore > rc.SuspicionIndicatorScore {
		indicators = append(indicators, CrimeIndicator{
			Type:       IndicatorSuspiciousActivity,
			Severity:   SeverityMedium,
			Confidence: report.Suspicion.SuspicionScore,
		})
	}

	report.CrimeIndicators = indicators
	report.CrimeDetected = len(indicators) > 0
	report.OverallSeverity = overallSeverity(rc, indicators)
	report.Recommendation = recommendation(report.OverallSeverity)
	return report
}

// overallSeverity buckets the highest weighted indicator confidence.
// No indicators means the video is safe.
func overallSeverity(rc *ReportConfig, indicators []CrimeIndicator) Severity {
	if len(indicators) == 0 {
		return SeveritySafe
	}
	var maxWeighted float32
	for _, ind := range indicators {
		weight, ok := severityWeights[ind.Type]
		if !ok {
			weight = defaultSeverityWeight
		}
		if w := ind.Confidence * weight; w > maxWeighted {
			maxWeighted = w
		}
	}
	switch {
	case maxWeighted > rc.CriticalSeverity:
		return SeverityCritical
	case maxWeighted > rc.HighSeverity:
		return SeverityHigh
	case maxWeighted > rc.MediumSeverity:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func recommendation(severity Severity) string {
	switch severity {
	case SeverityCritical:
		return "CRITICAL ALERT: Immediate danger detected. Call emergency services (911/112) immediately. Do NOT intervene directly. Evacuate to safe location."
	case SeverityHigh:
		return "HIGH ALERT: Serious criminal activity detected. Contact law enforcement immediately. Keep safe distance and observe from secure location."
	case SeverityMedium:
		return "CAUTION: Suspicious activity detected. Monitor situation closely. Contact security or police if activity escalates."
	case SeverityLow:
		return "LOW RISK: Minor concerning activity. Continue monitoring."
	default:
		return "SAFE: No significant unlawful activity detected."
	}
}
