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

// jobRepository implements the domain.JobRepository interface using GORM.
type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository is the constructor for jobRepository.
func NewJobRepository(db *gorm.DB) repository.JobRepository {
	return &jobRepository{db: db}
}

// FindByID retrieves a single listing by its unique ID.
func (repo *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var jobM model.JobModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&jobM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrJobNotFound
		}

		return nil, errors.Wrap(err, "failed to find job by id")
	}

	return toJobDomain(&jobM), nil
}

// ListActive returns active listings, newest first, with the total count.
func (repo *jobRepository) ListActive(ctx context.Context, filter repository.JobFilter) ([]*entity.Job, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.JobModel{}).
		Where("is_active = ?", true)

	if filter.JobType != "" {
		query = query.Where("job_type = ?", string(filter.JobType))
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR company ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count jobs")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var jobMs []model.JobModel
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&jobMs).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list jobs")
	}

	jobs := make([]*entity.Job, 0, len(jobMs))
	for i := range jobMs {
		jobs = append(jobs, toJobDomain(&jobMs[i]))
	}

	return jobs, total, nil
}

// Create persists a new listing.
func (repo *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	jobM := fromJobDomain(job)

	if err := repo.db.WithContext(ctx).Create(jobM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid poster reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create job")
	}

	job.ID = jobM.ID
	job.CreatedAt = jobM.CreatedAt
	job.UpdatedAt = jobM.UpdatedAt

	return nil
}

// Update modifies an existing listing.
func (repo *jobRepository) Update(ctx context.Context, job *entity.Job) error {
	jobM := fromJobDomain(job)

	if err := repo.db.WithContext(ctx).Save(jobM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update job")
	}

	job.UpdatedAt = jobM.UpdatedAt

	return nil
}

// toJobDomain maps a persistence model to a pure domain entity.
func toJobDomain(m *model.JobModel) *entity.Job {
	return &entity.Job{
		ID:           m.ID,
		Title:        m.Title,
		Company:      m.Company,
		Description:  m.Description,
		Requirements: m.Requirements,
		JobType:      entity.JobType(m.JobType),
		SalaryMin:    m.SalaryMin,
		SalaryMax:    m.SalaryMax,
		Location:     m.Location,
		PostedBy:     m.PostedBy,
		IsPremium:    m.IsPremium,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// fromJobDomain maps a domain entity to a persistence model.
func fromJobDomain(j *entity.Job) *model.JobModel {
	return &model.JobModel{
		ID:           j.ID,
		Title:        j.Title,
		Company:      j.Company,
		Description:  j.Description,
		Requirements: j.Requirements,
		JobType:      string(j.JobType),
		SalaryMin:    j.SalaryMin,
		SalaryMax:    j.SalaryMax,
		Location:     j.Location,
		PostedBy:     j.PostedBy,
		IsPremium:    j.IsPremium,
		IsActive:     j.IsActive,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}
