package simulation

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ResultsDB is a SQLite index of completed sweep jobs. Batch runs on a
// cluster land many result pairs in one directory; the index records
// which job produced which artifacts so reruns can skip finished work.
type ResultsDB struct {
	db *sql.DB
}

// OpenResultsDB opens (creating if needed) the job index at filename.
func OpenResultsDB(filename string) (*ResultsDB, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("simulation: opening results db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS jobs (
			job_id INTEGER PRIMARY KEY,
			base_name TEXT NOT NULL,
			config TEXT NOT NULL,
			n_replicas INTEGER NOT NULL,
			elapsed_seconds REAL NOT NULL,
			completed_at TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("simulation: creating jobs table: %w", err)
	}

	return &ResultsDB{db: db}, nil
}

// Close closes the underlying database.
func (r *ResultsDB) Close() error {
	return r.db.Close()
}

// JobRecord is one completed job.
type JobRecord struct {
	JobID       int
	BaseName    string
	Config      Config
	NReplicas   int
	Elapsed     time.Duration
	CompletedAt time.Time
}

// RecordJob stores a completed job, replacing any earlier record for
// the same job index.
func (r *ResultsDB) RecordJob(jobID int, baseName string, cfg Config, nReplicas int, elapsed time.Duration) error {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("simulation: marshaling job config: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT OR REPLACE INTO jobs
			(job_id, base_name, config, n_replicas, elapsed_seconds, completed_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
		jobID, baseName, string(cfgJSON), nReplicas,
		elapsed.Seconds(), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("simulation: recording job: %w", err)
	}
	return nil
}

// HasJob reports whether a job index is already recorded.
func (r *ResultsDB) HasJob(jobID int) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM jobs WHERE job_id = ?", jobID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("simulation: querying job: %w", err)
	}
	return count > 0, nil
}

// Jobs returns all recorded jobs ordered by job index.
func (r *ResultsDB) Jobs() ([]JobRecord, error) {
	rows, err := r.db.Query(`
		SELECT job_id, base_name, config, n_replicas, elapsed_seconds, completed_at
		FROM jobs ORDER BY job_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("simulation: querying jobs: %w", err)
	}
	defer rows.Close()

	var jobs []JobRecord
	for rows.Next() {
		var rec JobRecord
		var cfgJSON, completedAt string
		var elapsedSeconds float64
		if err := rows.Scan(&rec.JobID, &rec.BaseName, &cfgJSON, &rec.NReplicas, &elapsedSeconds, &completedAt); err != nil {
			return nil, fmt.Errorf("simulation: scanning job: %w", err)
		}
		if err := json.Unmarshal([]byte(cfgJSON), &rec.Config); err != nil {
			return nil, fmt.Errorf("simulation: parsing job config: %w", err)
		}
		rec.Elapsed = time.Duration(elapsedSeconds * float64(time.Second))
		if t, err := time.Parse(time.RFC3339, completedAt); err == nil {
			rec.CompletedAt = t
		}
		jobs = append(jobs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("simulation: iterating jobs: %w", err)
	}

	return jobs, nil
}
