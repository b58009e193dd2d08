// Package jobdb persists analysis jobs in a SQLite database.
package jobdb

import (
	"fmt"
	"time"

	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
	"gorm.io/gorm"
)

type JobDB struct {
	log logs.Log
	db  *gorm.DB
}

// Open or create the job DB
func NewJobDB(log logs.Log, dbPath string) (*JobDB, error) {
	db, err := dbh.OpenDB(log, dbh.MakeSqliteConfig(dbPath), Migrations(log), 0)
	if err != nil {
		return nil, fmt.Errorf("Failed to open job database %v: %w", dbPath, err)
	}
	return &JobDB{
		log: log,
		db:  db,
	}, nil
}

// Create inserts a new queued job for the video.
func (j *JobDB) Create(videoHash, filename string) (*AnalysisJob, error) {
	now := dbh.MakeIntTime(time.Now())
	job := &AnalysisJob{
		VideoHash: videoHash,
		Filename:  filename,
		State:     JobQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := j.db.Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

func (j *JobDB) Get(id int64) (*AnalysisJob, error) {
	job := &AnalysisJob{}
	if err := j.db.First(job, id).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// GetLatestByHash returns the most recent job for a video hash, or nil
// if the video has never been submitted.
func (j *JobDB) GetLatestByHash(videoHash string) (*AnalysisJob, error) {
	jobs := []AnalysisJob{}
	if err := j.db.Where("video_hash = ?", videoHash).Order("id DESC").Limit(1).Find(&jobs).Error; err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, nil
	}
	return &jobs[0], nil
}

// ListRecent returns the newest jobs first.
func (j *JobDB) ListRecent(limit int) ([]AnalysisJob, error) {
	jobs := []AnalysisJob{}
	if err := j.db.Order("id DESC").Limit(limit).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (j *JobDB) SetRunning(id int64, attempt int) error {
	return j.update(id, map[string]any{"state": JobRunning, "attempts": attempt})
}

func (j *JobDB) SetDone(id int64, severity string) error {
	return j.update(id, map[string]any{"state": JobDone, "severity": severity, "error": ""})
}

func (j *JobDB) SetFailed(id int64, errMsg string) error {
	return j.update(id, map[string]any{"state": JobFailed, "error": errMsg})
}

func (j *JobDB) update(id int64, fields map[string]any) error {
	fields["updated_at"] = dbh.MakeIntTime(time.Now())
	return j.db.Model(&AnalysisJob{}).Where("id = ?", id).Updates(fields).Error
}
