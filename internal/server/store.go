package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/shramsaathi/marketplace/internal/db"
)

// Store is the persistence surface the handlers depend on. *db.DB is the
// production implementation; tests substitute a stub.
type Store interface {
	CreateWorker(ctx context.Context, w *db.Worker) (*db.Worker, error)
	GetWorkerByID(ctx context.Context, id uuid.UUID) (*db.Worker, error)
	ListWorkers(ctx context.Context) ([]db.Worker, error)
	SetWorkerVerified(ctx context.Context, id uuid.UUID, verified bool) error
	IncrementWorkerJobsCompleted(ctx context.Context, id uuid.UUID) error

	CreateJob(ctx context.Context, j *db.Job) (*db.Job, error)
	GetJobByID(ctx context.Context, id uuid.UUID) (*db.Job, error)
	ListJobs(ctx context.Context, status string) ([]db.Job, error)
	ListActiveJobs(ctx context.Context) ([]db.Job, error)
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status string) error

	CreateApplication(ctx context.Context, a *db.Application) (*db.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]db.Application, error)
	HasApplied(ctx context.Context, jobID, workerID uuid.UUID) (bool, error)
}

var _ Store = (*db.DB)(nil)
