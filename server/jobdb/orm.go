package jobdb

import "github.com/cyclopcam/dbh"

// BaseModel is our base class for a GORM model.
// The default GORM Model uses int, but we prefer int64
type BaseModel struct {
	ID int64 `gorm:"primaryKey" json:"id"`
}

type JobState string

const (
	JobQueued  JobState = "queued"
	JobRunning JobState = "running"
	JobDone    JobState = "done"
	JobFailed  JobState = "failed"
)

// AnalysisJob tracks one video through the analysis pipeline. The full
// report lives in the result cache and the report archive; the job row
// carries just enough for status queries and listings.
type AnalysisJob struct {
	BaseModel
	VideoHash string   `json:"videoHash"`
	Filename  string   `json:"filename"` // Name of the uploaded file, for display only
	State     JobState `json:"state"`
	Error     string   `json:"error"`
	Attempts  int      `json:"attempts"`
	Severity  string   `json:"severity"` // Overall severity, set when the job is done
	CreatedAt dbh.IntTime `json:"createdAt"`
	UpdatedAt dbh.IntTime `json:"updatedAt"`
}
