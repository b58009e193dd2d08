package server

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/crimewatch/crimewatch/pkg/videohash"
	"github.com/cyclopcam/www"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// MaxVideoSize is the largest upload we accept.
const MaxVideoSize = 512 * 1024 * 1024

func (s *Server) setupHttpRoutes() error {
	router := httprouter.New()

	www.Handle(s.Log, router, "GET", "/api/ping", s.httpPing)
	www.Handle(s.Log, router, "POST", "/api/video", s.httpPostVideo)
	www.Handle(s.Log, router, "GET", "/api/job/:id", s.httpGetJob)
	www.Handle(s.Log, router, "GET", "/api/jobs/list", s.httpListJobs)
	www.Handle(s.Log, router, "GET", "/api/report/:hash", s.httpGetReport)
	www.Handle(s.Log, router, "GET", "/api/ws/jobs", s.httpJobUpdatesWS)

	s.httpRouter = router
	return nil
}

func (s *Server) httpPing(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	type pingJSON struct {
		Time int64 `json:"time"`
	}
	ping := &pingJSON{
		Time: time.Now().Unix(),
	}
	www.SendJSON(w, ping)
}

// Upload a video for analysis. The body is the raw video file. The
// optional "filename" query parameter is kept for display. Identical
// content is recognized by hash, so re-uploading an analyzed video is
// answered from the result cache by the worker.
func (s *Server) httpPostVideo(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	if r.ContentLength > MaxVideoSize {
		www.PanicBadRequestf("Request body is too large: %v. Maximum size: %v MB", r.ContentLength, MaxVideoSize/(1024*1024))
	}
	filename := strings.TrimSpace(www.QueryValue(r, "filename"))
	if filename == "" {
		filename = "upload.mp4"
	}
	if len(filename) > 200 {
		filename = filename[:200]
	}

	videoPath := filepath.Join(s.cfg.UploadDir, uuid.NewString()+".mp4")
	f, err := os.Create(videoPath)
	www.Check(err)
	_, copyErr := io.Copy(f, io.LimitReader(r.Body, MaxVideoSize))
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(videoPath)
		www.Check(copyErr)
		www.Check(closeErr)
	}

	hash, err := videohash.HashFile(videoPath)
	www.Check(err)

	cached := AnalysisResult{}
	isCached, err := s.cache.Get(r.Context(), hash, &cached)
	if err != nil {
		s.Log.Warnf("Result cache lookup failed for %v: %v", hash, err)
	}
	previous, err := s.jobDB.GetLatestByHash(hash)
	www.Check(err)

	job, err := s.jobDB.Create(hash, filename)
	www.Check(err)

	select {
	case s.jobQueue <- queuedJob{jobID: job.ID, videoHash: hash, videoPath: videoPath, filename: filename}:
	default:
		s.jobDB.SetFailed(job.ID, "Analysis queue is full")
		os.Remove(videoPath)
		www.SendError(w, "Analysis queue is full", http.StatusServiceUnavailable)
		return
	}

	s.Log.Infof("Video %v (%v) queued as job %v. Cached: %v", hash, filename, job.ID, isCached)
	type newJobJSON struct {
		JobID         int64  `json:"jobId"`
		VideoHash     string `json:"videoHash"`
		Cached        bool   `json:"cached"`
		PreviousJobID int64  `json:"previousJobId,omitempty"`
	}
	out := &newJobJSON{
		JobID:     job.ID,
		VideoHash: hash,
		Cached:    isCached,
	}
	if previous != nil {
		out.PreviousJobID = previous.ID
	}
	www.SendJSON(w, out)
}

func (s *Server) httpGetJob(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id := www.ParseID(params.ByName("id"))
	job, err := s.jobDB.Get(id)
	www.Check(err)
	www.SendJSON(w, job)
}

func (s *Server) httpListJobs(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	limit := www.QueryInt(r, "limit")
	if limit <= 0 {
		limit = 50
	}
	jobs, err := s.jobDB.ListRecent(limit)
	www.Check(err)
	www.SendJSON(w, jobs)
}

// Fetch the analysis result for a video hash, from the result cache if
// it's still there, otherwise from the report archive.
func (s *Server) httpGetReport(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	hash := params.ByName("hash")
	cached := AnalysisResult{}
	hit, err := s.cache.Get(r.Context(), hash, &cached)
	if err != nil {
		s.Log.Warnf("Result cache lookup failed for %v: %v", hash, err)
	}
	if hit {
		www.SendJSON(w, &cached)
		return
	}
	raw, err := os.ReadFile(s.reportFilename(hash))
	if os.IsNotExist(err) {
		www.PanicNotFound()
	}
	www.Check(err)
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}

// Stream job state changes over a websocket, one JSON message per
// update.
func (s *Server) httpJobUpdatesWS(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	conn, err := s.wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Log.Errorf("httpJobUpdatesWS websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	ch := s.AddWatcher()
	defer s.RemoveWatcher(ch)

	// Read from the websocket so that we notice when the client goes away.
	closed := make(chan bool)
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		close(closed)
	}()

	for {
		select {
		case update := <-ch:
			if err := conn.WriteJSON(update); err != nil {
				s.Log.Infof("Error writing to job updates websocket: %v", err)
				return
			}
		case <-closed:
			return
		}
	}
}
