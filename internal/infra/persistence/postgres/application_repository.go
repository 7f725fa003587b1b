package postgres

import (
	"context"

	"jobdesk/internal/domain/entity"
	domainerrors "jobdesk/internal/domain/errors"
	"jobdesk/internal/domain/repository"
	"jobdesk/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// applicationRepository implements the domain.ApplicationRepository interface.
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository is the constructor for applicationRepository.
func NewApplicationRepository(db *gorm.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create persists a new application. The unique (job_id, applicant_id) index
// rejects duplicates under concurrency.
func (repo *applicationRepository) Create(ctx context.Context, application *entity.JobApplication) error {
	appM := fromApplicationDomain(application)

	if err := repo.db.WithContext(ctx).Create(appM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrApplicationExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrJobNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create application")
	}

	application.ID = appM.ID
	application.AppliedAt = appM.AppliedAt

	return nil
}

// ListByApplicant returns a user's applications, newest first.
func (repo *applicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]*entity.JobApplication, error) {
	var appMs []model.JobApplicationModel
	err := repo.db.WithContext(ctx).
		Preload("Job").
		Where("applicant_id = ?", applicantID).
		Order("applied_at DESC").
		Find(&appMs).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	apps := make([]*entity.JobApplication, 0, len(appMs))
	for i := range appMs {
		apps = append(apps, toApplicationDomain(&appMs[i]))
	}

	return apps, nil
}

// toApplicationDomain maps a persistence model to a pure domain entity.
func toApplicationDomain(m *model.JobApplicationModel) *entity.JobApplication {
	app := &entity.JobApplication{
		ID:          m.ID,
		JobID:       m.JobID,
		ApplicantID: m.ApplicantID,
		CoverLetter: m.CoverLetter,
		ResumeURL:   m.ResumeURL,
		Status:      entity.ApplicationStatus(m.Status),
		AppliedAt:   m.AppliedAt,
	}
	if m.Job != nil {
		app.Job = toJobDomain(m.Job)
	}

	return app
}

// fromApplicationDomain maps a domain entity to a persistence model.
func fromApplicationDomain(a *entity.JobApplication) *model.JobApplicationModel {
	return &model.JobApplicationModel{
		ID:          a.ID,
		JobID:       a.JobID,
		ApplicantID: a.ApplicantID,
		CoverLetter: a.CoverLetter,
		ResumeURL:   a.ResumeURL,
		Status:      string(a.Status),
		AppliedAt:   a.AppliedAt,
	}
}
