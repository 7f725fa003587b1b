package impl

import (
	"context"
	"log/slog"

	deliverycontext "jobdesk/internal/delivery/context"
	"jobdesk/internal/domain/entity"
	domainerrors "jobdesk/internal/domain/errors"
	"jobdesk/internal/domain/repository"
	"jobdesk/internal/domain/service"
	"jobdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// jobService implements the JobUsecase interface.
type jobService struct {
	jobRepo         repository.JobRepository
	savedJobRepo    repository.SavedJobRepository
	applicationRepo repository.ApplicationRepository
	userRepo        repository.UserRepository
	publisher       service.EventPublisher
	logger          *slog.Logger
}

// JobServiceParams holds dependencies for JobService, injected by Fx.
type JobServiceParams struct {
	fx.In

	JobRepo         repository.JobRepository
	SavedJobRepo    repository.SavedJobRepository
	ApplicationRepo repository.ApplicationRepository
	UserRepo        repository.UserRepository
	Publisher       service.EventPublisher
	Logger          *slog.Logger
}

// NewJobService is the constructor for jobService.
func NewJobService(params JobServiceParams) usecase.JobUsecase {
	return &jobService{
		jobRepo:         params.JobRepo,
		savedJobRepo:    params.SavedJobRepo,
		applicationRepo: params.ApplicationRepo,
		userRepo:        params.UserRepo,
		publisher:       params.Publisher,
		logger:          params.Logger,
	}
}

func (srv *jobService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListJobs returns active listings; IsSaved is computed for the viewer.
func (srv *jobService) ListJobs(ctx context.Context, input *usecase.ListJobsInput) (*usecase.ListJobsOutput, error) {
	filter := repository.JobFilter{
		JobType:  input.JobType,
		Location: input.Location,
		Search:   input.Search,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	jobs, total, err := srv.jobRepo.ListActive(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list jobs")
	}

	saved := map[uuid.UUID]bool{}
	if input.UserID != nil && len(jobs) > 0 {
		jobIDs := make([]uuid.UUID, 0, len(jobs))
		for _, job := range jobs {
			jobIDs = append(jobIDs, job.ID)
		}

		saved, err = srv.savedJobRepo.ExistsForJobs(ctx, *input.UserID, jobIDs)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve saved jobs")
		}
	}

	views := make([]*usecase.JobView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, &usecase.JobView{
			Job:     job,
			IsSaved: saved[job.ID],
		})
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return &usecase.ListJobsOutput{
		Jobs:     views,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetJob returns one listing with viewer-specific state.
func (srv *jobService) GetJob(ctx context.Context, jobID uuid.UUID, viewerID *uuid.UUID) (*usecase.JobView, error) {
	job, err := srv.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "job not found")
		}

		return nil, errors.Wrap(err, "failed to find job")
	}

	view := &usecase.JobView{Job: job}
	if viewerID != nil {
		view.IsSaved, err = srv.savedJobRepo.Exists(ctx, *viewerID, jobID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to check saved state")
		}
	}

	return view, nil
}

// CreateJob posts a new listing.
func (srv *jobService) CreateJob(ctx context.Context, input *usecase.CreateJobInput) (*entity.Job, error) {
	if !input.JobType.Valid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidFormat, "unknown job type")
	}

	poster, err := srv.userRepo.FindByID(ctx, input.PostedBy)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load poster")
	}

	job := &entity.Job{
		Title:        input.Title,
		Company:      input.Company,
		Description:  input.Description,
		Requirements: input.Requirements,
		JobType:      input.JobType,
		SalaryMin:    input.SalaryMin,
		SalaryMax:    input.SalaryMax,
		Location:     input.Location,
		PostedBy:     input.PostedBy,
		IsPremium:    poster.IsPremium,
		IsActive:     true,
	}

	if err := srv.jobRepo.Create(ctx, job); err != nil {
		return nil, errors.Wrap(err, "failed to create job")
	}

	srv.log(ctx).Info("Job posted", slog.Any("jobID", job.ID), slog.Any("postedBy", job.PostedBy))

	return job, nil
}

// UpdateJob modifies a listing; only the poster may do so.
func (srv *jobService) UpdateJob(ctx context.Context, input *usecase.UpdateJobInput) (*entity.Job, error) {
	job, err := srv.loadOwnedJob(ctx, input.JobID, input.ActorID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.Company != nil {
		job.Company = *input.Company
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Requirements != nil {
		job.Requirements = input.Requirements
	}
	if input.JobType != nil {
		if !input.JobType.Valid() {
			return nil, errors.Wrap(domainerrors.ErrInvalidFormat, "unknown job type")
		}
		job.JobType = *input.JobType
	}
	if input.SalaryMin != nil {
		job.SalaryMin = input.SalaryMin
	}
	if input.SalaryMax != nil {
		job.SalaryMax = input.SalaryMax
	}
	if input.Location != nil {
		job.Location = *input.Location
	}

	if err := srv.jobRepo.Update(ctx, job); err != nil {
		return nil, errors.Wrap(err, "failed to update job")
	}

	return job, nil
}

// DeactivateJob soft-deletes a listing; only the poster may do so.
func (srv *jobService) DeactivateJob(ctx context.Context, jobID, actorID uuid.UUID) error {
	job, err := srv.loadOwnedJob(ctx, jobID, actorID)
	if err != nil {
		return err
	}

	if !job.IsActive {
		return nil
	}
	job.IsActive = false

	if err := srv.jobRepo.Update(ctx, job); err != nil {
		return errors.Wrap(err, "failed to deactivate job")
	}

	srv.log(ctx).Info("Job deactivated", slog.Any("jobID", jobID))

	return nil
}

func (srv *jobService) loadOwnedJob(ctx context.Context, jobID, actorID uuid.UUID) (*entity.Job, error) {
	job, err := srv.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "job not found")
		}

		return nil, errors.Wrap(err, "failed to find job")
	}

	if job.PostedBy != actorID {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only the poster may modify a listing")
	}

	return job, nil
}

// SaveJob bookmarks a job for a user. Saving an already-saved job succeeds
// and reports Created=false.
func (srv *jobService) SaveJob(ctx context.Context, userID, jobID uuid.UUID) (*usecase.SaveJobOutput, error) {
	if _, err := srv.jobRepo.FindByID(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "job not found")
		}

		return nil, errors.Wrap(err, "failed to find job")
	}

	savedJob, created, err := srv.savedJobRepo.GetOrCreate(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "job not found")
		}

		return nil, errors.Wrap(err, "failed to save job")
	}

	return &usecase.SaveJobOutput{SavedJob: savedJob, Created: created}, nil
}

// UnsaveJob removes a bookmark.
func (srv *jobService) UnsaveJob(ctx context.Context, userID, jobID uuid.UUID) error {
	if err := srv.savedJobRepo.Delete(ctx, userID, jobID); err != nil {
		if errors.Is(err, repository.ErrSavedJobNotFound) {
			return errors.Wrap(domainerrors.ErrNotFound, "job is not saved")
		}

		return errors.Wrap(err, "failed to unsave job")
	}

	return nil
}

// IsJobSaved reports whether the user bookmarked the job.
func (srv *jobService) IsJobSaved(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	saved, err := srv.savedJobRepo.Exists(ctx, userID, jobID)
	if err != nil {
		return false, errors.Wrap(err, "failed to check saved state")
	}

	return saved, nil
}

// ListSavedJobs returns the user's bookmarks, newest first.
func (srv *jobService) ListSavedJobs(ctx context.Context, userID uuid.UUID) ([]*entity.SavedJob, error) {
	saved, err := srv.savedJobRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list saved jobs")
	}

	return saved, nil
}

// Apply submits a job application, at most one per (job, applicant).
func (srv *jobService) Apply(ctx context.Context, input *usecase.ApplyInput) (*entity.JobApplication, error) {
	job, err := srv.jobRepo.FindByID(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "job not found")
		}

		return nil, errors.Wrap(err, "failed to find job")
	}
	if !job.IsActive {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "job is no longer active")
	}

	application := &entity.JobApplication{
		JobID:       input.JobID,
		ApplicantID: input.ApplicantID,
		CoverLetter: input.CoverLetter,
		ResumeURL:   input.ResumeURL,
		Status:      entity.ApplicationStatusPending,
	}

	if err := srv.applicationRepo.Create(ctx, application); err != nil {
		if errors.Is(err, repository.ErrApplicationExists) {
			return nil, errors.Wrap(domainerrors.ErrAlreadyApplied, "apply failed")
		}
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "job not found")
		}

		return nil, errors.Wrap(err, "failed to create application")
	}

	srv.publishApplicationEvent(ctx, application)

	return application, nil
}

// ListMyApplications returns the user's applications, newest first.
func (srv *jobService) ListMyApplications(ctx context.Context, applicantID uuid.UUID) ([]*entity.JobApplication, error) {
	applications, err := srv.applicationRepo.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}

	return applications, nil
}

// publishApplicationEvent emits a best-effort event; the application is
// already committed, so publish failures are only logged.
func (srv *jobService) publishApplicationEvent(ctx context.Context, application *entity.JobApplication) {
	event := &service.Event{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Type:      service.EventTypeJobApplied,
		UserID:    application.ApplicantID.String(),
		JobID:     application.JobID.String(),
	}

	if err := srv.publisher.Publish(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish application event",
			slog.Any("jobID", application.JobID),
			slog.Any("error", err))
	}
}
