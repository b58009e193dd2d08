package nn

import (
	"sort"
	"strings"
)

// Detection filter parameters.
// The per-category confidence thresholds are deliberately aggressive
// (low). They were tuned for recall: missing a knife is much worse than
// keeping a spurious cup. Treat them as policy, not as bugs.
type FilterParams struct {
	CriticalThreshold float32 // persons and weapon-like objects
	ValuableThreshold float32 // high-value items
	VehicleThreshold  float32 // vehicles
	DamageThreshold   float32 // vandalism-related objects
	DefaultThreshold  float32 // everything else
	NmsIouThreshold   float32 // boxes overlapping more than this are duplicates
}

func NewFilterParams() *FilterParams {
	return &FilterParams{
		CriticalThreshold: 0.10,
		ValuableThreshold: 0.15,
		VehicleThreshold:  0.20,
		DamageThreshold:   0.20,
		DefaultThreshold:  0.30,
		NmsIouThreshold:   DefaultNmsIouThreshold,
	}
}

func (p *FilterParams) thresholdForLabel(label string) float32 {
	lower := strings.ToLower(label)
	switch {
	case CriticalLabels[lower]:
		return p.CriticalThreshold
	case ValuableLabels[lower]:
		return p.ValuableThreshold
	case VehicleLabels[lower]:
		return p.VehicleThreshold
	case DamageRelatedLabels[lower]:
		return p.DamageThreshold
	default:
		return p.DefaultThreshold
	}
}

// FilterDetections cleans the raw output of the object detector for one frame:
// first per-category confidence gating, then greedy non-max suppression.
// Empty input yields empty output.
func FilterDetections(objects []Detection, params *FilterParams) []Detection {
	if params == nil {
		params = NewFilterParams()
	}

	gated := make([]Detection, 0, len(objects))
	for _, obj := range objects {
		if obj.Confidence >= params.thresholdForLabel(obj.Label) {
			gated = append(gated, obj)
		}
	}
	if len(gated) <= 1 {
		return gated
	}

	// Greedy NMS: keep the most confident box, discard everything that
	// overlaps it too much, repeat.
	sort.SliceStable(gated, func(i, j int) bool {
		return gated[i].Confidence > gated[j].Confidence
	})
	keep := make([]Detection, 0, len(gated))
	suppressed := make([]bool, len(gated))
	for i := range gated {
		if suppressed[i] {
			continue
		}
		keep = append(keep, gated[i])
		for j := i + 1; j < len(gated); j++ {
			if !suppressed[j] && gated[i].Box.IOU(gated[j].Box) > params.NmsIouThreshold {
				suppressed[j] = true
			}
		}
	}
	return keep
}

// FilterFrames applies FilterDetections to every frame.
func FilterFrames(frames []FrameDetections, params *FilterParams) []FrameDetections {
	out := make([]FrameDetections, len(frames))
	for i, frame := range frames {
		out[i] = FrameDetections{
			FrameIndex: frame.FrameIndex,
			Frame:      frame.Frame,
			Objects:    FilterDetections(frame.Objects, params),
		}
	}
	return out
}
