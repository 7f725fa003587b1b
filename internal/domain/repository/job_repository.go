package repository

import (
	"context"
	"errors"

	"jobdesk/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for job persistence.
var (
	// ErrJobNotFound is returned when a job listing is not found.
	ErrJobNotFound = errors.New("job not found")
	// ErrSavedJobNotFound is returned when a bookmark is not found.
	ErrSavedJobNotFound = errors.New("saved job not found")
	// ErrApplicationExists is returned when the applicant already applied.
	ErrApplicationExists = errors.New("application already exists")
)

// JobFilter narrows job listing queries.
type JobFilter struct {
	JobType  entity.JobType // Empty matches every type.
	Location string         // Substring match; empty matches everywhere.
	Search   string         // Substring match on title/company; empty matches all.
	Page     int
	PageSize int
}

// JobRepository defines the standard operations for listing persistence.
type JobRepository interface {
	// FindByID retrieves a single listing by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)

	// ListActive returns active listings, newest first, with the total count.
	ListActive(ctx context.Context, filter JobFilter) ([]*entity.Job, int64, error)

	// Create persists a new listing.
	Create(ctx context.Context, job *entity.Job) error

	// Update modifies an existing listing.
	Update(ctx context.Context, job *entity.Job) error
}

// SavedJobRepository persists bookmarks. GetOrCreate must be atomic so
// concurrent saves of the same (user, job) pair yield exactly one row.
type SavedJobRepository interface {
	// GetOrCreate bookmarks a job for a user. The boolean reports whether a
	// new row was created.
	GetOrCreate(ctx context.Context, userID, jobID uuid.UUID) (*entity.SavedJob, bool, error)

	// Delete removes the bookmark for the (user, job) pair.
	Delete(ctx context.Context, userID, jobID uuid.UUID) error

	// Exists reports whether the user has bookmarked the job.
	Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error)

	// ListByUser returns a user's bookmarks, newest first, with listings joined.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SavedJob, error)

	// ExistsForJobs reports, per job ID, whether the user bookmarked it.
	ExistsForJobs(ctx context.Context, userID uuid.UUID, jobIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

// ApplicationRepository persists job applications.
type ApplicationRepository interface {
	// Create persists a new application. Returns ErrApplicationExists when the
	// applicant already has one for the job.
	Create(ctx context.Context, application *entity.JobApplication) error

	// ListByApplicant returns a user's applications, newest first.
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*entity.JobApplication, error)
}
