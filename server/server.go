// Package server is the video crime analysis service. It accepts video
// uploads, runs them through the detection and analysis pipeline, and
// serves the resulting crime reports.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/crimewatch/crimewatch/pkg/crime"
	"github.com/crimewatch/crimewatch/pkg/motion"
	"github.com/crimewatch/crimewatch/pkg/nn"
	"github.com/crimewatch/crimewatch/server/frames"
	"github.com/crimewatch/crimewatch/server/jobdb"
	"github.com/crimewatch/crimewatch/server/nnclient"
	"github.com/crimewatch/crimewatch/server/resultcache"
	"github.com/cyclopcam/logs"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

type Server struct {
	Log logs.Log

	cfg          Config
	jobDB        *jobdb.JobDB
	cache        *resultcache.ResultCache
	frames       *frames.Extractor
	motion       *motion.Analyzer
	crimeCfg     *crime.Config
	filterParams *nn.FilterParams
	detector     ObjectDetector
	recognizer   ActionRecognizer

	signalIn   chan os.Signal
	httpServer *http.Server
	httpRouter *httprouter.Router
	wsUpgrader websocket.Upgrader

	jobQueue  chan queuedJob
	workersWG sync.WaitGroup

	watchersLock sync.RWMutex
	watchers     []chan *JobUpdate
}

func NewServer(configFile string) (*Server, error) {
	cfg := Config{}
	if cfgB, err := os.ReadFile(configFile); err != nil {
		return nil, err
	} else {
		if err := json.Unmarshal(cfgB, &cfg); err != nil {
			return nil, fmt.Errorf("Error parsing config file %v: %w", configFile, err)
		}
	}
	logger, err := logs.NewLog()
	if err != nil {
		return nil, err
	}
	client := nnclient.NewClient(logger, cfg.Detector.URL)
	return newServer(logger, cfg, client, client)
}

// newServer does the assembly that doesn't depend on a config file, so
// tests can inject their own detector and recognizer.
func newServer(logger logs.Log, cfg Config, detector ObjectDetector, recognizer ActionRecognizer) (*Server, error) {
	cfg.applyDefaults()
	for _, dir := range []string{cfg.UploadDir, cfg.ReportDir} {
		if err := os.MkdirAll(dir, 0770); err != nil {
			return nil, err
		}
	}
	jobDB, err := jobdb.NewJobDB(logger, cfg.DB)
	if err != nil {
		return nil, err
	}
	cache, err := resultcache.NewResultCache(logger, cfg.Redis, 0)
	if err != nil {
		return nil, err
	}
	extractor, err := frames.NewExtractor(logger, cfg.FramesDir, cfg.FPS)
	if err != nil {
		return nil, err
	}
	s := &Server{
		Log:          logger,
		cfg:          cfg,
		jobDB:        jobDB,
		cache:        cache,
		frames:       extractor,
		motion:       motion.NewAnalyzer(logger, motion.DefaultConfig()),
		crimeCfg:     crime.DefaultConfig(),
		filterParams: nn.NewFilterParams(),
		detector:     detector,
		recognizer:   recognizer,
		jobQueue:     make(chan queuedJob, JobQueueSize),
	}
	s.startWorkers(cfg.Workers)
	if err := s.setupHttpRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

// port example: ":8080"
func (s *Server) ListenHTTP(port string) error {
	s.Log.Infof("Listening on %v", port)
	s.httpServer = &http.Server{
		Addr:    port,
		Handler: s.httpRouter,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) ListenForKillSignals() {
	s.signalIn = make(chan os.Signal, 1)
	signal.Notify(s.signalIn, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig, ok := <-s.signalIn
		if ok {
			s.Log.Infof("Received OS signal '%v'. Shutting down", sig.String())
			s.Shutdown()
		}
	}()
}

func (s *Server) Shutdown() {
	s.Log.Infof("Shutdown")
	if s.signalIn != nil {
		signal.Stop(s.signalIn)
		close(s.signalIn)
	}
	close(s.jobQueue)
	s.workersWG.Wait()
	if s.httpServer != nil {
		s.Log.Infof("Closing HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := s.httpServer.Shutdown(ctx)
		cancel()
		if err != nil {
			s.Log.Warnf("HTTP shutdown error: %v", err)
		}
	}
	s.cache.Close()
	s.Log.Infof("Shutdown complete")
	s.Log.Close()
}
