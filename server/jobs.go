package server

import (
	"context"
	"os"
	"time"

	"github.com/crimewatch/crimewatch/server/jobdb"
)

const (
	JobQueueSize = 64
	// MaxJobAttempts is the total number of times we run a job before
	// marking it failed (first run plus two retries).
	MaxJobAttempts = 3
	retryDelay     = 5 * time.Second
)

// queuedJob is one video waiting for a worker.
type queuedJob struct {
	jobID     int64
	videoHash string
	videoPath string
	filename  string
}

func (s *Server) startWorkers(n int) {
	for i := 0; i < n; i++ {
		s.workersWG.Add(1)
		go s.workerLoop(i)
	}
}

func (s *Server) workerLoop(workerIdx int) {
	defer s.workersWG.Done()
	for job := range s.jobQueue {
		s.runJob(job)
	}
	s.Log.Infof("Analysis worker %v exiting", workerIdx)
}

func (s *Server) runJob(job queuedJob) {
	var lastErr error
	for attempt := 1; attempt <= MaxJobAttempts; attempt++ {
		if attempt > 1 {
			s.Log.Warnf("Retrying job %v (attempt %v/%v): %v", job.jobID, attempt, MaxJobAttempts, lastErr)
			time.Sleep(retryDelay)
		}
		if err := s.jobDB.SetRunning(job.jobID, attempt); err != nil {
			s.Log.Errorf("Failed to mark job %v running: %v", job.jobID, err)
		}
		s.sendToWatchers(&JobUpdate{JobID: job.jobID, VideoHash: job.videoHash, State: jobdb.JobRunning})

		result, err := s.processVideo(context.Background(), job)
		if err == nil {
			severity := string(result.CrimeReport.OverallSeverity)
			if err := s.jobDB.SetDone(job.jobID, severity); err != nil {
				s.Log.Errorf("Failed to mark job %v done: %v", job.jobID, err)
			}
			s.sendToWatchers(&JobUpdate{JobID: job.jobID, VideoHash: job.videoHash, State: jobdb.JobDone, Severity: severity})
			s.Log.Infof("Job %v (%v) done. Severity %v", job.jobID, job.videoHash, severity)
			return
		}
		lastErr = err
	}

	s.Log.Errorf("Job %v (%v) failed after %v attempts: %v", job.jobID, job.videoHash, MaxJobAttempts, lastErr)
	if err := s.jobDB.SetFailed(job.jobID, lastErr.Error()); err != nil {
		s.Log.Errorf("Failed to mark job %v failed: %v", job.jobID, err)
	}
	s.sendToWatchers(&JobUpdate{JobID: job.jobID, VideoHash: job.videoHash, State: jobdb.JobFailed, Error: lastErr.Error()})
	s.cleanupJob(job)
}

// cleanupJob removes the staged video and any extracted frames after a
// job has finished for good.
func (s *Server) cleanupJob(job queuedJob) {
	if err := s.frames.Cleanup(job.videoHash); err != nil {
		s.Log.Warnf("Failed to clean up frames for %v: %v", job.videoHash, err)
	}
	if err := os.Remove(job.videoPath); err != nil && !os.IsNotExist(err) {
		s.Log.Warnf("Failed to remove video %v: %v", job.videoPath, err)
	}
}
