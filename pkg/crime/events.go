package crime

import (
	"strings"

	"github.com/crimewatch/crimewatch/pkg/nn"
)

// EventSource says which signal produced an event.
type EventSource string

const (
	SourceObjectDetection    EventSource = "object_detection"
	SourceActionRecognition  EventSource = "action_recognition"
	SourceTemporalAnalysis   EventSource = "temporal_analysis"
	SourceCrossModal         EventSource = "cross_modal_correlation"
)

// Event types.
const (
	EventWeaponLikeObject      = "weapon_like_object_detected"
	EventValuablesWithPersons  = "valuable_items_with_multiple_persons"
	EventCrowdActivity         = "crowd_activity"
	EventWeaponDetected        = "weapon_detected"
	EventWeaponPersistent      = "weapon_persistent_presence"
	EventValuableSuddenChange  = "valuable_items_sudden_change"
	EventPropertyDamage        = "possible_property_damage"
	EventRobberyOrSnatching    = "possible_robbery_or_snatching"
	EventAssaultOrFight        = "possible_assault_or_fight"
	EventWeaponIncident        = "possible_weapon_incident"
	EventChaseOrEscape         = "possible_chase_or_escape"
	EventBreakIn               = "possible_break_in"
	EventSuspiciousBehavior    = "suspicious_behavior"
	EventArmedConflict         = "armed_conflict_detected"
)

// Event is one suspected unlawful occurrence. Events are heuristic
// suggestions, not definitive crimes. Frame and FrameIndex are set only
// for events tied to a single frame.
type Event struct {
	Type       string         `json:"type"`
	Frame      string         `json:"frame,omitempty"`
	FrameIndex int            `json:"frameIndex,omitempty"`
	Confidence float32        `json:"confidence"`
	Severity   Severity       `json:"severity"`
	Source     EventSource    `json:"source"`
	Details    map[string]any `json:"details"`
}

// actionEventKeywords maps recognized action labels to event types.
// Order matters: an action matching several entries emits one event
// per entry, in this order.
var actionEventKeywords = []struct {
	eventType string
	keywords  []string
}{
	{EventPropertyDamage, []string{
		"tagging graffiti", "spray painting", "vandalizing", "smashing",
		"breaking", "destroying", "damaging", "scratching",
	}},
	{EventRobberyOrSnatching, []string{
		"stealing", "shoplifting", "pick pocketing", "mugging",
		"robbery", "snatching", "grabbing", "taking", "theft",
	}},
	{EventAssaultOrFight, []string{
		"fighting", "punching", "kicking", "wrestling", "slapping",
		"strangling", "beating", "hitting", "attacking", "struggling",
		"brawling", "combat",
	}},
	{EventWeaponIncident, []string{
		"shooting", "firing gun", "aiming gun", "stabbing",
		"knife fighting", "wielding", "threatening", "pointing",
	}},
	{EventChaseOrEscape, []string{
		"running", "chasing", "escaping", "fleeing", "pursuing",
		"sprinting", "racing",
	}},
	{EventBreakIn, []string{
		"breaking and entering", "climbing", "opening", "forcing",
		"prying", "jimmying",
	}},
	{EventSuspiciousBehavior, []string{
		"lurking", "sneaking", "hiding", "creeping", "stalking",
		"loitering", "prowling",
	}},
}

// EvaluateEvents builds the event list from per-frame object detections,
// clip-level action predictions, temporal patterns across frames, and
// finally cross-modal correlation between the two signals.
// A nil cfg uses DefaultConfig.
func EvaluateEvents(detections []nn.FrameDetections, actions []nn.ActionClip, cfg *Config) []Event {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	ec := &cfg.Events

	events := []Event{}
	totalFrames := len(detections)
	weaponFrames := []int{}
	valuableFrames := []int{}

	for _, frame := range detections {
		counts := map[string]int{}
		// Labels in first-occurrence order, so event details stay
		// deterministic.
		order := []string{}
		for _, obj := range frame.Objects {
			label := strings.ToLower(obj.Label)
			if counts[label] == 0 {
				order = append(order, label)
			}
			counts[label]++
		}
		personCount := counts[nn.PersonLabel]

		weaponLabels := []string{}
		valuableLabels := []string{}
		for _, label := range order {
			if nn.IsEventWeaponLabel(label) {
				weaponLabels = append(weaponLabels, label)
			}
			if nn.IsValuableLabel(label) {
				valuableLabels = append(valuableLabels, label)
			}
		}

		if len(weaponLabels) > 0 {
			weaponFrames = append(weaponFrames, frame.FrameIndex)
			weaponCounts := map[string]any{}
			for _, label := range weaponLabels {
				weaponCounts[label] = counts[label]
			}
			confidence := ec.WeaponObjectConfidenceAlone
			severity := SeverityHigh
			if personCount > 0 {
				confidence = ec.WeaponObjectConfidenceArmed
				severity = SeverityCritical
			}
			events = append(events, Event{
				Type:       EventWeaponLikeObject,
				Frame:      frame.Frame,
				FrameIndex: frame.FrameIndex,
				Confidence: confidence,
				Severity:   severity,
				Source:     SourceObjectDetection,
				Details: map[string]any{
					"weaponLabels":   weaponLabels,
					"counts":         weaponCounts,
					"personsPresent": personCount,
				},
			})
		}

		if len(valuableLabels) > 0 {
			valuableFrames = append(valuableFrames, frame.FrameIndex)
			if personCount >= ec.ValuablesPersonsMinPersons {
				itemCount := 0
				for _, label := range valuableLabels {
					itemCount += counts[label]
				}
				events = append(events, Event{
					Type:       EventValuablesWithPersons,
					Frame:      frame.Frame,
					FrameIndex: frame.FrameIndex,
					Confidence: ec.ValuablesPersonsConfidence,
					Severity:   SeverityMedium,
					Source:     SourceObjectDetection,
					Details: map[string]any{
						"valuableLabels": valuableLabels,
						"personsCount":   personCount,
						"itemsCount":     itemCount,
					},
				})
			}
		}

		if personCount >= ec.CrowdMinPersons {
			severity := SeverityLow
			if personCount >= ec.CrowdMediumPersons {
				severity = SeverityMedium
			}
			events = append(events, Event{
				Type:       EventCrowdActivity,
				Frame:      frame.Frame,
				FrameIndex: frame.FrameIndex,
				Confidence: min(ec.CrowdMaxConfidence, ec.CrowdBaseConfidence+float32(personCount)*ec.CrowdPerPersonConfidence),
				Severity:   severity,
				Source:     SourceObjectDetection,
				Details: map[string]any{
					"personsVisible": personCount,
				},
			})
		}
	}

	if len(weaponFrames) >= 1 {
		eventType := EventWeaponDetected
		confidence := ec.WeaponPresenceConfidence
		if len(weaponFrames) >= ec.WeaponPersistentMinFrames {
			eventType = EventWeaponPersistent
			confidence = ec.WeaponPersistentConfidence
		}
		events = append(events, Event{
			Type:       eventType,
			Confidence: confidence,
			Severity:   SeverityCritical,
			Source:     SourceTemporalAnalysis,
			Details: map[string]any{
				"framesWithWeapon": len(weaponFrames),
				"totalFrames":      totalFrames,
				"persistenceRatio": float32(len(weaponFrames)) / float32(max(1, totalFrames)),
			},
		})
	}

	if len(valuableFrames) > 0 {
		first := valuableFrames[0]
		last := valuableFrames[len(valuableFrames)-1]
		if float32(last-first) < float32(totalFrames)*ec.ValuableSpanRatio {
			events = append(events, Event{
				Type:       EventValuableSuddenChange,
				Confidence: ec.ValuableChangeConfidence,
				Severity:   SeverityMedium,
				Source:     SourceTemporalAnalysis,
				Details: map[string]any{
					"firstAppearance": first,
					"lastAppearance":  last,
					"durationRatio":   float32(last-first) / float32(max(1, totalFrames)),
				},
			})
		}
	}

	for _, clip := range actions {
		for _, action := range clip.TopActions {
			minProb := ec.DefaultProbFloor
			if action.CrimeRelevant {
				minProb = ec.CrimeRelevantProbFloor
			}
			if action.Probability < minProb {
				continue
			}
			for _, entry := range actionEventKeywords {
				if !nn.MatchKeyword(action.Label, entry.keywords) {
					continue
				}
				events = append(events, Event{
					Type:       entry.eventType,
					Confidence: action.Probability,
					Severity:   actionEventSeverity(entry.eventType, action.Probability),
					Source:     SourceActionRecognition,
					Details: map[string]any{
						"label":         action.Label,
						"prob":          action.Probability,
						"clipIndex":     clip.ClipIndex,
						"clipType":      clip.ClipType,
						"crimeRelevant": action.CrimeRelevant,
					},
				})
			}
		}
	}

	// Weapon sighting plus a violent action makes the whole scene an
	// armed conflict.
	weaponEventCount := 0
	fightEventCount := 0
	for _, e := range events {
		if strings.Contains(e.Type, "weapon") {
			weaponEventCount++
		}
		if strings.Contains(e.Type, "assault") || strings.Contains(e.Type, "fight") {
			fightEventCount++
		}
	}
	if weaponEventCount > 0 && fightEventCount > 0 {
		events = append(events, Event{
			Type:       EventArmedConflict,
			Confidence: ec.CrossModalConfidence,
			Severity:   SeverityCritical,
			Source:     SourceCrossModal,
			Details: map[string]any{
				"weaponDetections": weaponEventCount,
				"fightActions":     fightEventCount,
				"correlation":      "weapons detected during violent actions",
			},
		})
	}

	return events
}

func actionEventSeverity(eventType string, prob float32) Severity {
	switch {
	case strings.Contains(eventType, "weapon") || strings.Contains(eventType, "assault"):
		if prob > 0.1 {
			return SeverityCritical
		}
		return SeverityHigh
	case strings.Contains(eventType, "robbery") || strings.Contains(eventType, "break_in"),
		strings.Contains(eventType, "chase") || strings.Contains(eventType, "fight"):
		if prob > 0.05 {
			return SeverityHigh
		}
		return SeverityMedium
	default:
		if prob > 0.05 {
			return SeverityMedium
		}
		return SeverityLow
	}
}
