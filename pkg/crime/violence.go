package crime

import (
	"fmt"
	"sort"

	"github.com/crimewatch/crimewatch/pkg/nn"
)

// ViolentAction is a recognized action that matched the violence
// keyword list, with its boosted intensity.
type ViolentAction struct {
	Action     string      `json:"action"`
	Confidence float32     `json:"confidence"`
	Intensity  float32     `json:"intensity"`
	ClipIndex  int         `json:"clipIndex"`
	ClipType   nn.ClipType `json:"clipType"`
}

// ViolenceReport is the result of the violence intensity analysis.
type ViolenceReport struct {
	Detected              bool            `json:"detected"`
	ViolenceScore         float32         `json:"violenceScore"`
	IntensityLevel        IntensityLevel  `json:"intensityLevel"`
	ViolentActions        []ViolentAction `json:"violentActions"`
	MultiPersonFrameRatio float32         `json:"multiPersonFrameRatio"`
	Assessment            string          `json:"assessment"`
}

// AnalyzeViolence scores how violent the recognized actions are. Each
// matching action gets an intensity boost by keyword tier, and frames
// with two or more people raise the score, since fights need
// participants. Actions come back sorted by intensity, most violent
// first. A nil cfg uses DefaultConfig.
func AnalyzeViolence(actions []nn.ActionClip, detections []nn.FrameDetections, cfg *Config) *ViolenceReport {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	vc := &cfg.Violence

	violentActions := []ViolentAction{}
	for _, clip := range actions {
		for _, action := range clip.TopActions {
			if nn.MatchKeyword(action.Label, violenceKeywords) {
				violentActions = append(violentActions, ViolentAction{
					Action:     action.Label,
					Confidence: action.Probability,
					Intensity:  violenceIntensity(action.Label, action.Probability),
					ClipIndex:  clip.ClipIndex,
					ClipType:   clip.ClipType,
				})
			}
		}
	}

	multiPersonFrames := 0
	for _, frame := range detections {
		if frame.CountPersons() >= 2 {
			multiPersonFrames++
		}
	}
	multiPersonRatio := float32(multiPersonFrames) / float32(max(1, len(detections)))

	score := violenceScore(vc, violentActions, multiPersonRatio)

	sort.SliceStable(violentActions, func(i, j int) bool {
		return violentActions[i].Intensity > violentActions[j].Intensity
	})

	return &ViolenceReport{
		Detected:              len(violentActions) > 0,
		ViolenceScore:         score,
		IntensityLevel:        intensityLevel(vc, score),
		ViolentActions:        violentActions,
		MultiPersonFrameRatio: multiPersonRatio,
		Assessment:            violenceAssessment(score, len(violentActions)),
	}
}

// violenceIntensity boosts an action's probability by how severe its
// keyword tier is, clamped to 1.
func violenceIntensity(label string, probability float32) float32 {
	var mult float32
	switch {
	case nn.MatchKeyword(label, extremeViolenceKeywords):
		mult = extremeIntensityMultiplier
	case nn.MatchKeyword(label, highViolenceKeywords):
		mult = highIntensityMultiplier
	case nn.MatchKeyword(label, mediumViolenceKeywords):
		mult = mediumIntensityMultiplier
	default:
		return probability * baseIntensityMultiplier
	}
	return min(1, probability*mult)
}

func violenceScore(vc *ViolenceConfig, violentActions []ViolentAction, multiPersonRatio float32) float32 {
	if len(violentActions) == 0 {
		return 0
	}
	var sum float32
	for _, a := range violentActions {
		sum += a.Intensity
	}
	avgIntensity := sum / float32(len(violentActions))
	countFactor := min(1, float32(len(violentActions))*vc.ScoreCountSaturation)

	score := avgIntensity*vc.ScoreMeanWeight +
		countFactor*vc.ScoreCountWeight +
		multiPersonRatio*vc.ScoreMultiPersonWeight
	return min(1, score)
}

func intensityLevel(vc *ViolenceConfig, score float32) IntensityLevel {
	switch {
	case score > vc.ExtremeScore:
		return IntensityExtreme
	case score > vc.HighScore:
		return IntensityHigh
	case score > vc.ModerateScore:
		return IntensityModerate
	default:
		return IntensityLow
	}
}

func violenceAssessment(score float32, actionCount int) string {
	switch {
	case score > 0.75:
		return fmt.Sprintf("EXTREME violence detected: %v violent actions identified. Immediate intervention required.", actionCount)
	case score > 0.5:
		return fmt.Sprintf("HIGH violence detected: %v violent actions. Serious assault in progress.", actionCount)
	case score > 0.25:
		return fmt.Sprintf("MODERATE violence: %v potentially violent actions detected.", actionCount)
	default:
		return "Low or no violence detected."
	}
}
