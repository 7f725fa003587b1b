package model

import (
	"time"

	"github.com/google/uuid"
)

// JobModel mirrors the 'jobs' table.
type JobModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Title        string    `gorm:"type:varchar(255);not null"`
	Company      string    `gorm:"type:varchar(255);not null"`
	Description  string    `gorm:"type:text"`
	Requirements []string  `gorm:"type:jsonb;serializer:json"`
	JobType      string    `gorm:"type:varchar(20);not null;index"`
	SalaryMin    *float64
	SalaryMax    *float64
	Location     string    `gorm:"type:varchar(255);index"`
	PostedBy     uuid.UUID `gorm:"type:uuid;not null;index"`
	IsPremium    bool      `gorm:"not null;default:false"`
	IsActive     bool      `gorm:"not null;default:true;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (JobModel) TableName() string {
	return "jobs"
}

// SavedJobModel mirrors the 'saved_jobs' table. The (user_id, job_id) pair
// is unique so saving twice cannot duplicate a bookmark.
type SavedJobModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_jobs_user_job"`
	JobID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_jobs_user_job"`
	Job     *JobModel `gorm:"foreignKey:JobID"`
	SavedAt time.Time `gorm:"autoCreateTime"`
}

// TableName explicitly sets the table name for GORM.
func (SavedJobModel) TableName() string {
	return "saved_jobs"
}

// JobApplicationModel mirrors the 'job_applications' table. The
// (job_id, applicant_id) pair is unique so a seeker applies at most once.
type JobApplicationModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_applicant"`
	Job         *JobModel `gorm:"foreignKey:JobID"`
	ApplicantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_applicant"`
	CoverLetter string    `gorm:"type:text"`
	ResumeURL   string    `gorm:"type:varchar(512)"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'"`
	AppliedAt   time.Time `gorm:"autoCreateTime"`
}

// TableName explicitly sets the table name for GORM.
func (JobApplicationModel) TableName() string {
	return "job_applications"
}
