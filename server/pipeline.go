package server

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/crimewatch/crimewatch/pkg/crime"
	"github.com/crimewatch/crimewatch/pkg/motion"
	"github.com/crimewatch/crimewatch/pkg/nn"
)

// AnalysisResult is the full output of analyzing one video. This is
// what lands in the result cache and the report archive, and what the
// report API returns.
type AnalysisResult struct {
	VideoHash      string               `json:"videoHash"`
	FramesAnalyzed int                  `json:"framesAnalyzed"`
	Detections     []nn.FrameDetections `json:"detections"`
	Actions        []nn.ActionClip      `json:"actions"`
	Events         []crime.Event        `json:"events"`
	CrimeReport    *crime.CrimeReport   `json:"crimeReport"`
	MotionAnalysis *motion.Report       `json:"motionAnalysis"`
	Metadata       AnalysisMetadata     `json:"metadata"`
}

type AnalysisMetadata struct {
	Filename    string    `json:"filename"`
	ProcessedAt time.Time `json:"processedAt"`
	FPS         int       `json:"fps"`
}

// processVideo runs the full analysis pipeline for one job: extract
// frames, detect objects, recognize actions, analyze motion, evaluate
// events and generate the crime report. Identical videos are served
// from the result cache without re-analysis.
func (s *Server) processVideo(ctx context.Context, job queuedJob) (*AnalysisResult, error) {
	cached := AnalysisResult{}
	if hit, err := s.cache.Get(ctx, job.videoHash, &cached); err != nil {
		s.Log.Warnf("Result cache lookup failed for %v: %v", job.videoHash, err)
	} else if hit {
		s.Log.Infof("Video %v found in result cache, skipping analysis", job.videoHash)
		s.cleanupJob(job)
		return &cached, nil
	}

	framePaths, err := s.frames.Extract(ctx, job.videoPath, job.videoHash)
	if err != nil {
		return nil, err
	}

	detections := s.detectFrames(ctx, framePaths)
	filtered := nn.FilterFrames(detections, s.filterParams)
	actions := s.recognizeActions(ctx, framePaths)
	motionReport := s.motion.AnalyzeFiles(framePaths)
	events := crime.EvaluateEvents(filtered, actions, s.crimeCfg)
	crimeReport := crime.GenerateCrimeReport(filtered, actions, s.crimeCfg)

	result := &AnalysisResult{
		VideoHash:      job.videoHash,
		FramesAnalyzed: len(framePaths),
		Detections:     filtered,
		Actions:        actions,
		Events:         events,
		CrimeReport:    crimeReport,
		MotionAnalysis: motionReport,
		Metadata: AnalysisMetadata{
			Filename:    job.filename,
			ProcessedAt: time.Now().UTC(),
			FPS:         s.cfg.FPS,
		},
	}

	if err := s.writeReportFile(result); err != nil {
		s.Log.Errorf("Failed to archive report for %v: %v", job.videoHash, err)
	}
	if err := s.cache.Set(ctx, job.videoHash, result); err != nil {
		s.Log.Warnf("Failed to cache result for %v: %v", job.videoHash, err)
	}
	s.cleanupJob(job)
	return result, nil
}

// detectFrames runs object detection on every frame. A detection
// failure on one frame yields an empty frame rather than failing the
// whole video.
func (s *Server) detectFrames(ctx context.Context, framePaths []string) []nn.FrameDetections {
	detections := make([]nn.FrameDetections, 0, len(framePaths))
	for i, path := range framePaths {
		fd, err := s.detector.DetectObjects(ctx, path, i)
		if err != nil {
			s.Log.Errorf("Object detection failed on frame %v (%v): %v", i, path, err)
			fd = &nn.FrameDetections{
				FrameIndex: i,
				Frame:      filepath.Base(path),
				Objects:    []nn.Detection{},
			}
		}
		detections = append(detections, *fd)
	}
	return detections
}

// recognizeActions plans overlapping clips over the video and scores
// each. Too few frames, or a recognizer failure, yields no actions.
func (s *Server) recognizeActions(ctx context.Context, framePaths []string) []nn.ActionClip {
	clips := nn.PlanClips(len(framePaths), 0, 0)
	if clips == nil {
		s.Log.Infof("Too few frames (%v) for action recognition", len(framePaths))
		return []nn.ActionClip{}
	}
	actions := make([]nn.ActionClip, 0, len(clips))
	for _, clip := range clips {
		out, err := s.recognizer.RecognizeClip(ctx, framePaths[clip.FrameRange.Start:clip.FrameRange.End], clip)
		if err != nil {
			s.Log.Errorf("Action recognition failed on clip %v: %v", clip.ClipIndex, err)
			return []nn.ActionClip{}
		}
		actions = append(actions, *out)
	}
	return actions
}

func (s *Server) reportFilename(videoHash string) string {
	return filepath.Join(s.cfg.ReportDir, videoHash+".json")
}

func (s *Server) writeReportFile(result *AnalysisResult) error {
	raw, err := json.MarshalIndent(result, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(s.reportFilename(result.VideoHash), raw, 0660)
}
