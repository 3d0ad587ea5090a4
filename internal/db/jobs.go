package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, title, description, trade_required, required_skills, category,
       date, wage_amount, wage_currency, wage_period, location, latitude,
       longitude, status, created_at, updated_at`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.Title, &j.Description, &j.TradeRequired,
		&j.RequiredSkills, &j.Category, &j.Date, &j.WageAmount,
		&j.WageCurrency, &j.WagePeriod, &j.Location, &j.Latitude,
		&j.Longitude, &j.Status, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// CreateJob inserts a job posting in active status and returns the stored row.
func (db *DB) CreateJob(ctx context.Context, j *Job) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, description, trade_required, required_skills,
		        category, date, wage_amount, wage_currency, wage_period,
		        location, latitude, longitude, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 'active')
		 RETURNING `+jobColumns,
		j.Title, j.Description, j.TradeRequired, j.RequiredSkills,
		j.Category, j.Date, j.WageAmount, j.WageCurrency, j.WagePeriod,
		j.Location, j.Latitude, j.Longitude,
	)
	created, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return created, nil
}

// GetJobByID retrieves a job, or nil when not found.
func (db *DB) GetJobByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// ListJobs returns job postings ordered by creation time, optionally
// restricted to one status.
func (db *DB) ListJobs(ctx context.Context, status string) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at, id`

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}
	return jobs, nil
}

// ListActiveJobs returns the jobs eligible for matching.
func (db *DB) ListActiveJobs(ctx context.Context) ([]Job, error) {
	return db.ListJobs(ctx, "active")
}

// UpdateJobStatus transitions a job's lifecycle status.
func (db *DB) UpdateJobStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
