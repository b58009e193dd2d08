package crime

import (
	"fmt"

	"github.com/crimewatch/crimewatch/pkg/nn"
)

// Suspicious pattern types.
const (
	PatternLoitering        = "possible_loitering"
	PatternSuspiciousAction = "suspicious_action"
	PatternGroupLoitering   = "group_loitering"
)

// SuspiciousPattern is one detected suspicious behavior pattern.
// Action and ClipIndex are set only for action-derived patterns,
// Details only for the presence-based ones.
type SuspiciousPattern struct {
	Type       string  `json:"type"`
	Action     string  `json:"action,omitempty"`
	Confidence float32 `json:"confidence"`
	Details    string  `json:"details,omitempty"`
	ClipIndex  int     `json:"clipIndex,omitempty"`
}

// SuspicionReport is the result of the suspicious behavior analysis.
type SuspicionReport struct {
	Detected       bool                `json:"detected"`
	SuspicionScore float32             `json:"suspicionScore"`
	Patterns       []SuspiciousPattern `json:"patterns"`
	Assessment     string              `json:"assessment"`
}

// AnalyzeSuspicion looks for behavior that is concerning without being
// overtly criminal: a person hanging around for most of the video,
// actions like lurking or sneaking, and groups of three or more people
// persisting across frames. A nil cfg uses DefaultConfig.
func AnalyzeSuspicion(detections []nn.FrameDetections, actions []nn.ActionClip, cfg *Config) *SuspicionReport {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	sc := &cfg.Suspicion

	patterns := []SuspiciousPattern{}
	totalFrames := len(detections)

	personFrames := 0
	groupFrames := 0
	for _, frame := range detections {
		n := frame.CountPersons()
		if n > 0 {
			personFrames++
		}
		if n >= sc.GroupMinPersons {
			groupFrames++
		}
	}
	personRatio := float32(personFrames) / float32(max(1, totalFrames))

	if personRatio > sc.LoiterFrameRatio {
		patterns = append(patterns, SuspiciousPattern{
			Type:       PatternLoitering,
			Confidence: min(sc.LoiterMaxConfidence, personRatio*sc.LoiterConfidenceScale),
			Details:    fmt.Sprintf("Person present in %.1f%% of frames", personRatio*100),
		})
	}

	for _, clip := range actions {
		for _, action := range clip.TopActions {
			if nn.MatchKeyword(action.Label, suspiciousKeywords) {
				patterns = append(patterns, SuspiciousPattern{
					Type:       PatternSuspiciousAction,
					Action:     action.Label,
					Confidence: action.Probability,
					ClipIndex:  clip.ClipIndex,
				})
			}
		}
	}

	if float32(groupFrames) > float32(totalFrames)*sc.GroupFrameRatio {
		patterns = append(patterns, SuspiciousPattern{
			Type:       PatternGroupLoitering,
			Confidence: sc.GroupConfidence,
			Details:    fmt.Sprintf("Multiple people present in %v frames", groupFrames),
		})
	}

	return &SuspicionReport{
		Detected:       len(patterns) > 0,
		SuspicionScore: min(1, float32(len(patterns))*sc.PatternScoreStep),
		Patterns:       patterns,
		Assessment:     suspicionAssessment(patterns),
	}
}

func suspicionAssessment(patterns []SuspiciousPattern) string {
	switch {
	case len(patterns) >= 3:
		return fmt.Sprintf("HIGHLY suspicious: %v suspicious patterns detected.", len(patterns))
	case len(patterns) >= 1:
		return fmt.Sprintf("Suspicious activity detected: %v", patterns[0].Type)
	default:
		return "No suspicious behavior detected."
	}
}
