package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const workerColumns = `id, name, phone, trade, skills, experience_years, rating,
       availability, availability_date, latitude, longitude, verified,
       total_jobs_completed, created_at, updated_at`

func scanWorker(row pgx.Row) (*Worker, error) {
	var w Worker
	err := row.Scan(&w.ID, &w.Name, &w.Phone, &w.Trade, &w.Skills,
		&w.ExperienceYears, &w.Rating, &w.Availability, &w.AvailabilityDate,
		&w.Latitude, &w.Longitude, &w.Verified, &w.TotalJobsCompleted,
		&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// CreateWorker inserts a worker profile and returns the stored row.
func (db *DB) CreateWorker(ctx context.Context, w *Worker) (*Worker, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO workers (name, phone, trade, skills, experience_years,
		        availability, availability_date, latitude, longitude)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+workerColumns,
		w.Name, w.Phone, w.Trade, w.Skills, w.ExperienceYears,
		w.Availability, w.AvailabilityDate, w.Latitude, w.Longitude,
	)
	created, err := scanWorker(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker: %w", err)
	}
	return created, nil
}

// GetWorkerByID retrieves a worker, or nil when not found.
func (db *DB) GetWorkerByID(ctx context.Context, id uuid.UUID) (*Worker, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+workerColumns+` FROM workers WHERE id = $1`, id)
	w, err := scanWorker(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get worker: %w", err)
	}
	return w, nil
}

// ListWorkers returns all worker profiles ordered by creation time.
func (db *DB) ListWorkers(ctx context.Context) ([]Worker, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+workerColumns+` FROM workers ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var workers []Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workers: %w", err)
	}
	return workers, nil
}

// SetWorkerVerified toggles a worker's verification flag (admin action).
func (db *DB) SetWorkerVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE workers SET verified = $1, updated_at = NOW() WHERE id = $2`,
		verified, id)
	if err != nil {
		return fmt.Errorf("failed to update worker verification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// IncrementWorkerJobsCompleted bumps the completed-job counter when a job the
// worker was hired for completes.
func (db *DB) IncrementWorkerJobsCompleted(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE workers
		 SET total_jobs_completed = total_jobs_completed + 1, updated_at = NOW()
		 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment jobs completed: %w", err)
	}
	return nil
}
