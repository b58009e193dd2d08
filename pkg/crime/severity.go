package crime

// Severity is the ordinal grade of how concerning a signal is.
// The ordering is total: Safe < Low < Medium < High < Critical.
// "none" and "safe" share the bottom rank; analyzers that found nothing
// use None, the overall report uses Safe.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeveritySafe     Severity = "safe"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// IntensityLevel grades the violence analyzer's score.
type IntensityLevel string

const (
	IntensityLow      IntensityLevel = "low"
	IntensityModerate IntensityLevel = "moderate"
	IntensityHigh     IntensityLevel = "high"
	IntensityExtreme  IntensityLevel = "extreme"
)

// Severity maps an intensity level onto the common severity scale, for
// use in crime indicators.
func (l IntensityLevel) Severity() Severity {
	switch l {
	case IntensityExtreme:
		return SeverityCritical
	case IntensityHigh:
		return SeverityHigh
	case IntensityModerate:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Relevance is how strongly a motion or behavior pattern correlates
// with criminal activity.
type Relevance string

const (
	RelevanceLow    Relevance = "low"
	RelevanceMedium Relevance = "medium"
	RelevanceHigh   Relevance = "high"
)
