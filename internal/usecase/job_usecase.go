package usecase

import (
	"context"

	"jobdesk/internal/domain/entity"

	"github.com/google/uuid"
)

// ListJobsInput narrows and paginates the public job listing.
type ListJobsInput struct {
	JobType  entity.JobType
	Location string
	Search   string
	Page     int
	PageSize int
	// UserID is the authenticated viewer, if any; used to compute IsSaved.
	UserID *uuid.UUID
}

// JobView is a listing plus viewer-specific state.
type JobView struct {
	Job     *entity.Job
	IsSaved bool
}

// ListJobsOutput is a page of listings with the total count.
type ListJobsOutput struct {
	Jobs     []*JobView
	Total    int64
	Page     int
	PageSize int
}

// CreateJobInput carries the data for a new listing.
type CreateJobInput struct {
	Title        string
	Company      string
	Description  string
	Requirements []string
	JobType      entity.JobType
	SalaryMin    *float64
	SalaryMax    *float64
	Location     string
	PostedBy     uuid.UUID
}

// UpdateJobInput carries the mutable fields of a listing. Nil pointers leave
// the field unchanged.
type UpdateJobInput struct {
	JobID        uuid.UUID
	ActorID      uuid.UUID
	Title        *string
	Company      *string
	Description  *string
	Requirements []string
	JobType      *entity.JobType
	SalaryMin    *float64
	SalaryMax    *float64
	Location     *string
}

// SaveJobOutput reports the result of a bookmark attempt.
type SaveJobOutput struct {
	SavedJob *entity.SavedJob
	// Created is false when the job was already bookmarked.
	Created bool
}

// ApplyInput carries a job application.
type ApplyInput struct {
	JobID       uuid.UUID
	ApplicantID uuid.UUID
	CoverLetter string
	ResumeURL   string
}

// JobUsecase defines the interface for job listing operations.
type JobUsecase interface {
	// ListJobs returns active listings; IsSaved is computed for the viewer.
	ListJobs(ctx context.Context, input *ListJobsInput) (*ListJobsOutput, error)

	// GetJob returns one listing with viewer-specific state.
	GetJob(ctx context.Context, jobID uuid.UUID, viewerID *uuid.UUID) (*JobView, error)

	// CreateJob posts a new listing.
	CreateJob(ctx context.Context, input *CreateJobInput) (*entity.Job, error)

	// UpdateJob modifies a listing; only the poster may do so.
	UpdateJob(ctx context.Context, input *UpdateJobInput) (*entity.Job, error)

	// DeactivateJob soft-deletes a listing; only the poster may do so.
	DeactivateJob(ctx context.Context, jobID, actorID uuid.UUID) error

	// SaveJob bookmarks a job for a user; idempotent.
	SaveJob(ctx context.Context, userID, jobID uuid.UUID) (*SaveJobOutput, error)

	// UnsaveJob removes a bookmark.
	UnsaveJob(ctx context.Context, userID, jobID uuid.UUID) error

	// IsJobSaved reports whether the user bookmarked the job.
	IsJobSaved(ctx context.Context, userID, jobID uuid.UUID) (bool, error)

	// ListSavedJobs returns the user's bookmarks, newest first.
	ListSavedJobs(ctx context.Context, userID uuid.UUID) ([]*entity.SavedJob, error)

	// Apply submits a job application, at most one per (job, applicant).
	Apply(ctx context.Context, input *ApplyInput) (*entity.JobApplication, error)

	// ListMyApplications returns the user's applications, newest first.
	ListMyApplications(ctx context.Context, applicantID uuid.UUID) ([]*entity.JobApplication, error)
}
