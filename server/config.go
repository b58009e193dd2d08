package server

import "github.com/crimewatch/crimewatch/server/frames"

type Config struct {
	DB        string         `json:"db"`        // Path to the sqlite job database
	Redis     string         `json:"redis"`     // Redis URL for the result cache, eg "redis://localhost:6379/0"
	UploadDir string         `json:"uploadDir"` // Incoming videos are staged here until analysis finishes
	FramesDir string         `json:"framesDir"` // Extracted frames live here while a job runs
	ReportDir string         `json:"reportDir"` // Finished analysis results are written here as JSON
	FPS       int            `json:"fps"`       // Frame extraction rate. 0 means the default
	Workers   int            `json:"workers"`   // Number of concurrent analysis workers. 0 means 1
	Detector  DetectorConfig `json:"detector"`
}

// DetectorConfig points at the inference service that hosts the object
// detection and action recognition models.
type DetectorConfig struct {
	URL string `json:"url"`
}

func (c *Config) applyDefaults() {
	if c.FPS <= 0 {
		c.FPS = frames.DefaultFPS
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
}
