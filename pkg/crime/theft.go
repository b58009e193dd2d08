package crime

import (
	"fmt"
	"strings"

	"github.com/crimewatch/crimewatch/pkg/nn"
)

// Disappearance records a valuable item that was seen briefly and then
// vanished from the video.
type Disappearance struct {
	Item           string  `json:"item"`
	FirstSeen      int     `json:"firstSeen"`
	LastSeen       int     `json:"lastSeen"`
	DurationRatio  float32 `json:"durationRatio"`
	SuspicionScore float32 `json:"suspicionScore"`
}

// TheftAction is a recognized action that matched the theft keywords.
type TheftAction struct {
	Action     string  `json:"action"`
	Confidence float32 `json:"confidence"`
	ClipIndex  int     `json:"clipIndex"`
}

// TheftReport is the result of the theft pattern analysis.
type TheftReport struct {
	Detected              bool            `json:"detected"`
	TheftProbability      float32         `json:"theftProbability"`
	ValuableDisappearances []Disappearance `json:"valuableDisappearances"`
	TheftActions          []TheftAction   `json:"theftActions"`
	Assessment            string          `json:"assessment"`
}

// AnalyzeTheft tracks valuable items across frames and flags the ones
// that appear briefly and vanish, then combines that with theft-flavored
// recognized actions into a probability. A nil cfg uses DefaultConfig.
func AnalyzeTheft(detections []nn.FrameDetections, actions []nn.ActionClip, cfg *Config) *TheftReport {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	tc := &cfg.Theft

	// Timeline of frame indexes per valuable label, in first-seen order.
	timeline := map[string][]int{}
	order := []string{}
	for _, frame := range detections {
		for _, obj := range frame.Objects {
			label := strings.ToLower(obj.Label)
			if !nn.IsValuableLabel(label) {
				continue
			}
			if _, seen := timeline[label]; !seen {
				order = append(order, label)
			}
			timeline[label] = append(timeline[label], frame.FrameIndex)
		}
	}

	totalFrames := len(detections)
	disappearances := []Disappearance{}
	for _, label := range order {
		frames := timeline[label]
		if float32(len(frames)) >= float32(totalFrames)*tc.RarePresenceRatio || len(frames) < tc.MinSightings {
			continue
		}
		firstSeen := frames[0]
		lastSeen := frames[0]
		for _, f := range frames[1:] {
			if f < firstSeen {
				firstSeen = f
			}
			if f > lastSeen {
				lastSeen = f
			}
		}
		duration := lastSeen - firstSeen
		if float32(duration) >= float32(totalFrames)*tc.SpanRatio {
			continue
		}
		suspicion := tc.ExtendedSuspicion
		if float32(duration) < float32(totalFrames)*tc.BriefSpanRatio {
			suspicion = tc.BriefSuspicion
		}
		disappearances = append(disappearances, Disappearance{
			Item:           label,
			FirstSeen:      firstSeen,
			LastSeen:       lastSeen,
			DurationRatio:  float32(duration) / float32(totalFrames),
			SuspicionScore: suspicion,
		})
	}

	theftActions := []TheftAction{}
	for _, clip := range actions {
		for _, action := range clip.TopActions {
			if nn.MatchKeyword(action.Label, theftKeywords) {
				theftActions = append(theftActions, TheftAction{
					Action:     action.Label,
					Confidence: action.Probability,
					ClipIndex:  clip.ClipIndex,
				})
			}
		}
	}

	probability := theftProbability(tc, disappearances, theftActions)

	return &TheftReport{
		Detected:               len(disappearances) > 0 || len(theftActions) > 0,
		TheftProbability:       probability,
		ValuableDisappearances: disappearances,
		TheftActions:           theftActions,
		Assessment:             theftAssessment(probability, len(disappearances), len(theftActions)),
	}
}

func theftProbability(tc *TheftConfig, disappearances []Disappearance, theftActions []TheftAction) float32 {
	if len(disappearances) == 0 && len(theftActions) == 0 {
		return 0
	}
	var disappearanceScore, actionScore float32
	for _, d := range disappearances {
		disappearanceScore += d.SuspicionScore
	}
	disappearanceScore /= float32(max(1, len(disappearances)))
	for _, a := range theftActions {
		actionScore += a.Confidence
	}
	actionScore /= float32(max(1, len(theftActions)))

	switch {
	case len(disappearances) > 0 && len(theftActions) > 0:
		return min(1, (disappearanceScore+actionScore)/2*tc.CombinedBoost)
	case len(disappearances) > 0:
		return disappearanceScore * tc.DisappearanceDamp
	default:
		return actionScore * tc.ActionDamp
	}
}

func theftAssessment(probability float32, disappearanceCount, actionCount int) string {
	switch {
	case probability > 0.7:
		return fmt.Sprintf("HIGH probability of theft: %v items disappeared, %v theft-related actions.", disappearanceCount, actionCount)
	case probability > 0.4:
		return "MODERATE theft risk: Suspicious patterns detected."
	default:
		return "Low theft risk."
	}
}
