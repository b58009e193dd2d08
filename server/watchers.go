package server

import (
	"github.com/crimewatch/crimewatch/pkg/gen"
	"github.com/crimewatch/crimewatch/server/jobdb"
)

const WatcherChannelSize = 100

// JobUpdate is sent to watchers whenever an analysis job changes state.
type JobUpdate struct {
	JobID     int64          `json:"jobId"`
	VideoHash string         `json:"videoHash"`
	State     jobdb.JobState `json:"state"`
	Severity  string         `json:"severity,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Register to receive job state changes.
func (s *Server) AddWatcher() chan *JobUpdate {
	s.watchersLock.Lock()
	defer s.watchersLock.Unlock()
	ch := make(chan *JobUpdate, WatcherChannelSize)
	s.watchers = append(s.watchers, ch)
	return ch
}

func (s *Server) RemoveWatcher(ch chan *JobUpdate) {
	s.watchersLock.Lock()
	defer s.watchersLock.Unlock()
	for i, w := range s.watchers {
		if w == ch {
			s.watchers = gen.DeleteFromSliceUnordered(s.watchers, i)
			return
		}
	}
	s.Log.Warnf("RemoveWatcher failed to find channel")
}

func (s *Server) sendToWatchers(update *JobUpdate) {
	s.watchersLock.RLock()
	for _, ch := range s.watchers {
		// If a watcher is falling behind, we drop updates rather than
		// stall the analysis workers.
		if len(ch) >= cap(ch)*9/10 {
			s.Log.Warnf("Job watcher is falling behind. Dropping updates.")
		} else {
			ch <- update
		}
	}
	s.watchersLock.RUnlock()
}
