package jobdb

import (
	"github.com/BurntSushi/migration"
	"github.com/cyclopcam/dbh"
	"github.com/cyclopcam/logs"
)

func Migrations(log logs.Log) []migration.Migrator {
	migs := []migration.Migrator{}
	idx := 0

	migs = append(migs, dbh.MakeMigrationFromSQL(log, &idx,
		`
		CREATE TABLE analysis_job(
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			video_hash TEXT NOT NULL,
			filename TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			attempts INT NOT NULL DEFAULT 0,
			severity TEXT NOT NULL DEFAULT '',
			created_at INT NOT NULL,
			updated_at INT NOT NULL
		);
		CREATE INDEX idx_analysis_job_video_hash ON analysis_job(video_hash);
		CREATE INDEX idx_analysis_job_state ON analysis_job(state);
	`))

	return migs
}
