package jobdb

import (
	"path/filepath"
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *JobDB {
	t.Helper()
	db, err := NewJobDB(logs.NewTestingLog(t), filepath.Join(t.TempDir(), "jobs.sqlite"))
	require.NoError(t, err)
	return db
}

func TestJobLifecycle(t *testing.T) {
	db := setup(t)

	job, err := db.Create("hash1", "robbery.mp4")
	require.NoError(t, err)
	require.NotZero(t, job.ID)
	require.Equal(t, JobQueued, job.State)

	require.NoError(t, db.SetRunning(job.ID, 1))
	got, err := db.Get(job.ID)
	require.NoError(t, err)
	require.Equal(t, JobRunning, got.State)
	require.Equal(t, 1, got.Attempts)

	require.NoError(t, db.SetDone(job.ID, "critical"))
	got, err = db.Get(job.ID)
	require.NoError(t, err)
	require.Equal(t, JobDone, got.State)
	require.Equal(t, "critical", got.Severity)
}

func TestJobFailure(t *testing.T) {
	db := setup(t)
	job, err := db.Create("hash1", "clip.mp4")
	require.NoError(t, err)

	require.NoError(t, db.SetFailed(job.ID, "ffmpeg exploded"))
	got, err := db.Get(job.ID)
	require.NoError(t, err)
	require.Equal(t, JobFailed, got.State)
	require.Equal(t, "ffmpeg exploded", got.Error)
}

func TestGetLatestByHash(t *testing.T) {
	db := setup(t)

	got, err := db.GetLatestByHash("nope")
	require.NoError(t, err)
	require.Nil(t, got)

	first, err := db.Create("hash1", "a.mp4")
	require.NoError(t, err)
	second, err := db.Create("hash1", "b.mp4")
	require.NoError(t, err)
	require.Greater(t, second.ID, first.ID)

	got, err = db.GetLatestByHash("hash1")
	require.NoError(t, err)
	require.Equal(t, second.ID, got.ID)
}

func TestListRecent(t *testing.T) {
	db := setup(t)
	for i := 0; i < 5; i++ {
		_, err := db.Create("hash", "clip.mp4")
		require.NoError(t, err)
	}
	jobs, err := db.ListRecent(3)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	require.Greater(t, jobs[0].ID, jobs[1].ID)
}
