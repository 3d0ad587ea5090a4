package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const applicationColumns = `id, job_id, worker_id, quote, message, match_score, status, created_at`

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	err := row.Scan(&a.ID, &a.JobID, &a.WorkerID, &a.Quote, &a.Message,
		&a.MatchScore, &a.Status, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication records a worker's application to a job. The match score
// is the policy output computed by the caller at application time.
func (db *DB) CreateApplication(ctx context.Context, a *Application) (*Application, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, worker_id, quote, message, match_score, status)
		 VALUES ($1, $2, $3, $4, $5, 'pending')
		 RETURNING `+applicationColumns,
		a.JobID, a.WorkerID, a.Quote, a.Message, a.MatchScore,
	)
	created, err := scanApplication(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return created, nil
}

// ListApplicationsByJob returns all applications for a job, newest first.
func (db *DB) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+`
		 FROM applications WHERE job_id = $1
		 ORDER BY created_at DESC, id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var applications []Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		applications = append(applications, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}
	return applications, nil
}

// HasApplied reports whether the worker already applied to the job.
func (db *DB) HasApplied(ctx context.Context, jobID, workerID uuid.UUID) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND worker_id = $2)`,
		jobID, workerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check application: %w", err)
	}
	return exists, nil
}
