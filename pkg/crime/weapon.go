package crime

import (
	"github.com/chewxy/math32"

	"github.com/crimewatch/crimewatch/pkg/nn"
)

// ThreatLevel grades the weapon analysis.
type ThreatLevel string

const (
	ThreatNone     ThreatLevel = "none"
	ThreatMedium   ThreatLevel = "medium"
	ThreatHigh     ThreatLevel = "high"
	ThreatCritical ThreatLevel = "critical"
)

// Severity maps a threat level onto the common severity scale.
func (t ThreatLevel) Severity() Severity {
	switch t {
	case ThreatCritical:
		return SeverityCritical
	case ThreatHigh:
		return SeverityHigh
	case ThreatMedium:
		return SeverityMedium
	default:
		return SeverityNone
	}
}

// WeaponSighting is a single weapon-like object in a frame.
type WeaponSighting struct {
	Type       string  `json:"type"`
	Confidence float32 `json:"confidence"`
}

// WeaponFrame summarizes one frame that contained at least one weapon.
type WeaponFrame struct {
	FrameIndex  int              `json:"frameIndex"`
	Frame       string           `json:"frame"`
	WeaponCount int              `json:"weaponCount"`
	PersonCount int              `json:"personCount"`
	Weapons     []WeaponSighting `json:"weapons"`
}

// ProximityAlert records a weapon whose nearest person was closer than
// the reporting distance.
type ProximityAlert struct {
	FrameIndex int     `json:"frameIndex"`
	WeaponType string  `json:"weaponType"`
	Distance   float32 `json:"distance"`
}

// WeaponAction is a recognized action that involves using a weapon.
type WeaponAction struct {
	Action     string      `json:"action"`
	Confidence float32     `json:"confidence"`
	ClipIndex  int         `json:"clipIndex"`
	ClipType   nn.ClipType `json:"clipType"`
}

// WeaponThreatReport is the result of the weapon threat analysis.
type WeaponThreatReport struct {
	Detected        bool             `json:"detected"`
	ThreatLevel     ThreatLevel      `json:"threatLevel"`
	WeaponFrames    []WeaponFrame    `json:"weaponFrames"`
	ProximityAlerts []ProximityAlert `json:"proximityAlerts"`
	WeaponActions   []WeaponAction   `json:"weaponActions"`
	Assessment      string           `json:"assessment"`
}

// AnalyzeWeaponThreat scans filtered detections for weapon-like objects
// and grades the threat by how close those objects are to people, and
// whether any recognized action involves using a weapon.
// A nil cfg uses DefaultConfig.
func AnalyzeWeaponThreat(detections []nn.FrameDetections, actions []nn.ActionClip, cfg *Config) *WeaponThreatReport {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	wc := &cfg.Weapon

	weaponFrames := []WeaponFrame{}
	// One entry per weapon per frame: the distance to the nearest person.
	proximity := []ProximityAlert{}

	for _, frame := range detections {
		var weapons, persons []nn.Detection
		for _, obj := range frame.Objects {
			if nn.IsWeaponLabel(obj.Label) {
				weapons = append(weapons, obj)
			} else if nn.IsPersonLabel(obj.Label) {
				persons = append(persons, obj)
			}
		}
		if len(weapons) == 0 {
			continue
		}
		wf := WeaponFrame{
			FrameIndex:  frame.FrameIndex,
			Frame:       frame.Frame,
			WeaponCount: len(weapons),
			PersonCount: len(persons),
		}
		for _, w := range weapons {
			wf.Weapons = append(wf.Weapons, WeaponSighting{Type: w.Label, Confidence: w.Confidence})
		}
		weaponFrames = append(weaponFrames, wf)

		for _, w := range weapons {
			if len(persons) == 0 {
				continue
			}
			minDist := math32.Inf(1)
			for _, p := range persons {
				d := w.Box.Center().Distance(p.Box.Center())
				if d < minDist {
					minDist = d
				}
			}
			proximity = append(proximity, ProximityAlert{
				FrameIndex: frame.FrameIndex,
				WeaponType: w.Label,
				Distance:   minDist,
			})
		}
	}

	weaponActions := []WeaponAction{}
	for _, clip := range actions {
		for _, action := range clip.TopActions {
			if nn.MatchKeyword(action.Label, weaponActionKeywords) {
				weaponActions = append(weaponActions, WeaponAction{
					Action:     action.Label,
					Confidence: action.Probability,
					ClipIndex:  clip.ClipIndex,
					ClipType:   clip.ClipType,
				})
			}
		}
	}

	level := weaponThreatLevel(wc, len(weaponFrames), proximity, len(weaponActions))

	alerts := []ProximityAlert{}
	for _, p := range proximity {
		if p.Distance < wc.ProximityReportDistance {
			alerts = append(alerts, p)
		}
	}

	return &WeaponThreatReport{
		Detected:        len(weaponFrames) > 0,
		ThreatLevel:     level,
		WeaponFrames:    weaponFrames,
		ProximityAlerts: alerts,
		WeaponActions:   weaponActions,
		Assessment:      weaponAssessment(level),
	}
}

func weaponThreatLevel(wc *WeaponConfig, weaponFrameCount int, proximity []ProximityAlert, weaponActionCount int) ThreatLevel {
	if weaponFrameCount == 0 {
		return ThreatNone
	}
	closeCount := 0
	moderateCount := 0
	for _, p := range proximity {
		if p.Distance < wc.ProximityCriticalDistance {
			closeCount++
		}
		if p.Distance < wc.ProximityModerateDistance {
			moderateCount++
		}
	}
	switch {
	case closeCount > 0 || weaponActionCount > 0:
		return ThreatCritical
	case moderateCount > 0 || weaponFrameCount > wc.HighThreatFrameCount:
		return ThreatHigh
	default:
		return ThreatMedium
	}
}

func weaponAssessment(level ThreatLevel) string {
	switch level {
	case ThreatCritical:
		return "CRITICAL: Weapon detected in close proximity to persons. Immediate threat to safety."
	case ThreatHigh:
		return "HIGH: Weapon detected in multiple frames. Potential threat situation."
	case ThreatMedium:
		return "MEDIUM: Weapon-like object detected. Monitor situation."
	default:
		return "No significant weapon threat detected."
	}
}
