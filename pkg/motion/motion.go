// Package motion analyzes frame-to-frame pixel changes to classify
// movement patterns: sudden movements, chase sequences, erratic
// behavior.
package motion

import (
	"fmt"

	"github.com/bmharper/cimg/v2"
	"github.com/cyclopcam/logs"

	"github.com/crimewatch/crimewatch/pkg/crime"
)

// Config holds the motion analysis thresholds. Motion scores are the
// percentage of pixels that changed between consecutive downsampled
// grayscale frames, so all score thresholds are in the range 0..100.
type Config struct {
	Width  int
	Height int
	// Only the first MaxFrames frames are analyzed.
	MaxFrames int
	MinFrames int

	// A pixel counts as changed when its absolute luma difference
	// exceeds this.
	PixelDiffThreshold int

	SuddenMovementThreshold float64
	ChaoticMeanScore        float64
	HighActivityMeanScore   float64
	ModerateMeanScore       float64
	IntermittentVariance    float64
	SuddenMovementLimit     int

	ChaseScoreThreshold float64
	ChaseMinRun         int
}

func DefaultConfig() Config {
	return Config{
		Width:                   320,
		Height:                  240,
		MaxFrames:               50,
		MinFrames:               2,
		PixelDiffThreshold:      25,
		SuddenMovementThreshold: 50,
		ChaoticMeanScore:        25,
		HighActivityMeanScore:   30,
		ModerateMeanScore:       15,
		IntermittentVariance:    50,
		SuddenMovementLimit:     3,
		ChaseScoreThreshold:     35,
		ChaseMinRun:             3,
	}
}

// Motion pattern categories.
const (
	PatternChaoticHighMotion    = "chaotic_high_motion"
	PatternErraticMovement      = "erratic_movement"
	PatternHighActivity         = "high_activity"
	PatternModerateActivity     = "moderate_activity"
	PatternIntermittentActivity = "intermittent_activity"
	PatternLowActivity          = "low_activity"
)

// Pattern is the overall classification of motion in the video.
type Pattern struct {
	Category       string          `json:"category"`
	Description    string          `json:"description"`
	CrimeRelevance crime.Relevance `json:"crimeRelevance"`
	Confidence     float32         `json:"confidence"`
}

// SuddenMovement is a single frame transition whose motion score
// crossed the sudden movement threshold.
type SuddenMovement struct {
	FrameIndex      int     `json:"frameIndex"`
	MotionIntensity float64 `json:"motionIntensity"`
	Timestamp       string  `json:"timestamp"`
}

// ChaseSequence is a sustained run of high motion scores.
type ChaseSequence struct {
	StartFrame     int     `json:"startFrame"`
	DurationFrames int     `json:"durationFrames"`
	AvgIntensity   float64 `json:"avgIntensity"`
	Description    string  `json:"description"`
}

// Report is the result of the motion analysis. When Analyzed is false,
// Reason says why and all other fields are zero.
type Report struct {
	Analyzed        bool             `json:"analyzed"`
	Reason          string           `json:"reason,omitempty"`
	AverageMotion   float64          `json:"averageMotion"`
	MaxMotion       float64          `json:"maxMotion"`
	MotionVariance  float64          `json:"motionVariance"`
	MotionPattern   *Pattern         `json:"motionPattern,omitempty"`
	SuddenMovements []SuddenMovement `json:"suddenMovements"`
	ChaseSequences  []ChaseSequence  `json:"chaseSequences"`
	FramesAnalyzed  int              `json:"framesAnalyzed"`
}

func notAnalyzed(reason string) *Report {
	return &Report{Analyzed: false, Reason: reason}
}

type Analyzer struct {
	log logs.Log
	cfg Config
}

func NewAnalyzer(log logs.Log, cfg Config) *Analyzer {
	return &Analyzer{
		log: log,
		cfg: cfg,
	}
}

// AnalyzeFiles runs motion analysis over frame images on disk, in the
// order given. Frames that fail to decode are skipped.
func (a *Analyzer) AnalyzeFiles(framePaths []string) *Report {
	if len(framePaths) < a.cfg.MinFrames {
		return notAnalyzed("Insufficient frames")
	}
	a.log.Infof("Analyzing motion patterns across %v frames", len(framePaths))

	limit := min(len(framePaths), a.cfg.MaxFrames)
	var scores []float64
	var sudden []SuddenMovement
	var prev []byte
	for idx := 0; idx < limit; idx++ {
		img, err := cimg.ReadFile(framePaths[idx])
		if err != nil {
			a.log.Errorf("Failed to decode frame %v: %v", framePaths[idx], err)
			continue
		}
		prev = a.step(img, prev, idx, &scores, &sudden)
	}
	return a.buildReport(scores, sudden)
}

// AnalyzeImages is AnalyzeFiles for frames already decoded in memory.
func (a *Analyzer) AnalyzeImages(frames []*cimg.Image) *Report {
	if len(frames) < a.cfg.MinFrames {
		return notAnalyzed("Insufficient frames")
	}
	limit := min(len(frames), a.cfg.MaxFrames)
	var scores []float64
	var sudden []SuddenMovement
	var prev []byte
	for idx := 0; idx < limit; idx++ {
		prev = a.step(frames[idx], prev, idx, &scores, &sudden)
	}
	return a.buildReport(scores, sudden)
}

// step downsamples one frame to grayscale, scores it against the
// previous frame, and returns it as the new previous frame.
func (a *Analyzer) step(img *cimg.Image, prev []byte, idx int, scores *[]float64, sudden *[]SuddenMovement) []byte {
	small := cimg.ResizeNew(img, a.cfg.Width, a.cfg.Height, nil)
	gray := toGray(small)
	if prev != nil {
		score := a.motionScore(prev, gray)
		*scores = append(*scores, score)
		if score > a.cfg.SuddenMovementThreshold {
			*sudden = append(*sudden, SuddenMovement{
				FrameIndex:      idx,
				MotionIntensity: score,
				Timestamp:       fmt.Sprintf("%vs", idx),
			})
		}
	}
	return gray
}

func (a *Analyzer) buildReport(scores []float64, sudden []SuddenMovement) *Report {
	if len(scores) == 0 {
		return notAnalyzed("No motion data")
	}
	var sum, maxScore float64
	for _, s := range scores {
		sum += s
		if s > maxScore {
			maxScore = s
		}
	}
	mean := sum / float64(len(scores))
	var variance float64
	for _, s := range scores {
		variance += (s - mean) * (s - mean)
	}
	variance /= float64(len(scores))

	pattern := a.classify(mean, variance, len(sudden))
	chases := a.detectChases(scores)
	a.log.Infof("Motion analysis complete: %v, %v sudden movements", pattern.Category, len(sudden))

	return &Report{
		Analyzed:        true,
		AverageMotion:   mean,
		MaxMotion:       maxScore,
		MotionVariance:  variance,
		MotionPattern:   pattern,
		SuddenMovements: sudden,
		ChaseSequences:  chases,
		FramesAnalyzed:  len(scores),
	}
}

// motionScore is the percentage of pixels whose luma changed by more
// than the pixel diff threshold.
func (a *Analyzer) motionScore(prev, cur []byte) float64 {
	changed := 0
	for i := range cur {
		diff := int(cur[i]) - int(prev[i])
		if diff < 0 {
			diff = -diff
		}
		if diff > a.cfg.PixelDiffThreshold {
			changed++
		}
	}
	return float64(changed) / float64(len(cur)) * 100
}

func (a *Analyzer) classify(mean, variance float64, suddenCount int) *Pattern {
	cfg := &a.cfg
	switch {
	case suddenCount > cfg.SuddenMovementLimit && mean > cfg.ChaoticMeanScore:
		return &Pattern{
			Category:       PatternChaoticHighMotion,
			Description:    "High chaotic motion with multiple sudden movements (possible chase, fight, panic)",
			CrimeRelevance: crime.RelevanceHigh,
			Confidence:     0.85,
		}
	case suddenCount > cfg.SuddenMovementLimit:
		return &Pattern{
			Category:       PatternErraticMovement,
			Description:    "Erratic motion patterns (possible suspicious behavior)",
			CrimeRelevance: crime.RelevanceMedium,
			Confidence:     0.70,
		}
	case mean > cfg.HighActivityMeanScore:
		return &Pattern{
			Category:       PatternHighActivity,
			Description:    "High overall motion (possible running, chase, or violent activity)",
			CrimeRelevance: crime.RelevanceMedium,
			Confidence:     0.75,
		}
	case mean > cfg.ModerateMeanScore:
		return &Pattern{
			Category:       PatternModerateActivity,
			Description:    "Moderate motion (normal activity or walking)",
			CrimeRelevance: crime.RelevanceLow,
			Confidence:     0.50,
		}
	case variance > cfg.IntermittentVariance:
		return &Pattern{
			Category:       PatternIntermittentActivity,
			Description:    "Sporadic bursts of activity (possible lurking or waiting behavior)",
			CrimeRelevance: crime.RelevanceMedium,
			Confidence:     0.65,
		}
	default:
		return &Pattern{
			Category:       PatternLowActivity,
			Description:    "Low motion (static scene or loitering)",
			CrimeRelevance: crime.RelevanceLow,
			Confidence:     0.40,
		}
	}
}

// detectChases finds sustained runs of high motion scores.
func (a *Analyzer) detectChases(scores []float64) []ChaseSequence {
	chases := []ChaseSequence{}
	runStart := -1
	flush := func(end int) {
		if runStart < 0 || end-runStart < a.cfg.ChaseMinRun {
			runStart = -1
			return
		}
		var sum float64
		for _, s := range scores[runStart:end] {
			sum += s
		}
		chases = append(chases, ChaseSequence{
			StartFrame:     runStart,
			DurationFrames: end - runStart,
			AvgIntensity:   sum / float64(end-runStart),
			Description:    "High-motion sequence suggesting chase or rapid movement",
		})
		runStart = -1
	}
	for idx, score := range scores {
		if score > a.cfg.ChaseScoreThreshold {
			if runStart < 0 {
				runStart = idx
			}
		} else {
			flush(idx)
		}
	}
	flush(len(scores))
	return chases
}

// toGray converts a resized frame to a single luma byte per pixel.
func toGray(img *cimg.Image) []byte {
	out := make([]byte, img.Width*img.Height)
	nchan := img.NChan()
	for y := 0; y < img.Height; y++ {
		row := img.Pixels[y*img.Stride:]
		for x := 0; x < img.Width; x++ {
			if nchan == 1 {
				out[y*img.Width+x] = row[x]
				continue
			}
			p := x * nchan
			r := int(row[p])
			g := int(row[p+1])
			b := int(row[p+2])
			out[y*img.Width+x] = byte((r*299 + g*587 + b*114) / 1000)
		}
	}
	return out
}
