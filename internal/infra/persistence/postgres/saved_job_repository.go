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
	"gorm.io/gorm/clause"
)

// savedJobRepository implements the domain.SavedJobRepository interface.
type savedJobRepository struct {
	db *gorm.DB
}

// NewSavedJobRepository is the constructor for savedJobRepository.
func NewSavedJobRepository(db *gorm.DB) repository.SavedJobRepository {
	return &savedJobRepository{db: db}
}

// GetOrCreate bookmarks a job for a user. The unique (user_id, job_id) index
// makes concurrent saves race-safe: the insert is ON CONFLICT DO NOTHING and
// the existing row is read back when nothing was inserted.
func (repo *savedJobRepository) GetOrCreate(ctx context.Context, userID, jobID uuid.UUID) (*entity.SavedJob, bool, error) {
	savedM := &model.SavedJobModel{
		UserID: userID,
		JobID:  jobID,
	}

	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "job_id"}},
			DoNothing: true,
		}).
		Create(savedM)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return nil, false, repository.ErrJobNotFound
		}

		return nil, false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to save job")
	}

	created := result.RowsAffected > 0
	if created {
		return toSavedJobDomain(savedM), true, nil
	}

	// Conflict path: fetch the existing bookmark.
	var existing model.SavedJobModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		First(&existing).Error
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to load existing saved job")
	}

	return toSavedJobDomain(&existing), false, nil
}

// Delete removes the bookmark for the (user, job) pair.
func (repo *savedJobRepository) Delete(ctx context.Context, userID, jobID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Delete(&model.SavedJobModel{})

	if result.Error != nil {
		return errors.WithStack(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrSavedJobNotFound
	}

	return nil
}

// Exists reports whether the user has bookmarked the job.
func (repo *savedJobRepository) Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.SavedJobModel{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error
	if err != nil {
		return false, errors.WithStack(err)
	}

	return count > 0, nil
}

// ListByUser returns a user's bookmarks, newest first, with listings joined.
func (repo *savedJobRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.SavedJob, error) {
	var savedMs []model.SavedJobModel
	err := repo.db.WithContext(ctx).
		Preload("Job").
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&savedMs).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	saved := make([]*entity.SavedJob, 0, len(savedMs))
	for i := range savedMs {
		saved = append(saved, toSavedJobDomain(&savedMs[i]))
	}

	return saved, nil
}

// ExistsForJobs reports, per job ID, whether the user bookmarked it.
func (repo *savedJobRepository) ExistsForJobs(ctx context.Context, userID uuid.UUID, jobIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(jobIDs))
	if len(jobIDs) == 0 {
		return result, nil
	}

	var savedIDs []uuid.UUID
	err := repo.db.WithContext(ctx).
		Model(&model.SavedJobModel{}).
		Where("user_id = ? AND job_id IN ?", userID, jobIDs).
		Pluck("job_id", &savedIDs).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, id := range savedIDs {
		result[id] = true
	}

	return result, nil
}

// toSavedJobDomain maps a persistence model to a pure domain entity.
func toSavedJobDomain(m *model.SavedJobModel) *entity.SavedJob {
	saved := &entity.SavedJob{
		ID:      m.ID,
		UserID:  m.UserID,
		JobID:   m.JobID,
		SavedAt: m.SavedAt,
	}
	if m.Job != nil {
		saved.Job = toJobDomain(m.Job)
	}

	return saved
}
