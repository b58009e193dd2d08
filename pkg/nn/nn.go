package nn

// Package nn is the data model shared by the detection filter and the
// crime analyzers. The object detector and the action recognizer are
// external black boxes; they hand us these structures and we never talk
// to a model directly.

const DefaultNmsIouThreshold = 0.45

// Detection is one labeled, confidence-scored object found in a single frame.
type Detection struct {
	Label      string  `json:"label"`
	Confidence float32 `json:"confidence"`
	Box        Rect    `json:"box"`
}

// FrameDetections groups the detections of a single video frame.
type FrameDetections struct {
	FrameIndex int         `json:"frameIndex"`
	Frame      string      `json:"frame,omitempty"` // Original frame filename, if known
	Objects    []Detection `json:"objects"`
}

// ClipType says where in the video an action clip was sampled from.
type ClipType string

const (
	ClipBeginning ClipType = "beginning"
	ClipMiddle    ClipType = "middle"
	ClipEnd       ClipType = "end"
)

// ActionPrediction is one entry of an action recognizer's top-K output.
type ActionPrediction struct {
	Label         string  `json:"label"`
	Probability   float32 `json:"probability"`
	CrimeRelevant bool    `json:"crimeRelevant"` // True if the recognizer matched a crime keyword, which lowers the probability floor downstream
}

// FrameRange is a half-open [Start, End) range of frame indices.
type FrameRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ActionClip is a temporal window of frames scored against a fixed
// action vocabulary.
type ActionClip struct {
	ClipIndex  int                `json:"clipIndex"`
	ClipType   ClipType           `json:"clipType"`
	FrameRange FrameRange         `json:"frameRange"`
	TopActions []ActionPrediction `json:"topActions"`
}

// CountPersons returns the number of "person" objects in the frame.
func (f *FrameDetections) CountPersons() int {
	n := 0
	for _, obj := range f.Objects {
		if IsPersonLabel(obj.Label) {
			n++
		}
	}
	return n
}
