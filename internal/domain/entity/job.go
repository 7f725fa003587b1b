package entity

import (
	"time"

	"github.com/google/uuid"
)

// JobType enumerates the employment forms a listing can offer.
type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

// Valid reports whether t is one of the known job types.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	default:
		return false
	}
}

// Job is a single listing on the board.
type Job struct {
	ID           uuid.UUID // The unique identifier for the listing.
	Title        string    // Position title.
	Company      string    // Hiring company name.
	Description  string    // Full listing body.
	Requirements []string  // Individual requirement items.
	JobType      JobType   // Employment form.
	SalaryMin    *float64  // Lower salary bound; nil when undisclosed.
	SalaryMax    *float64  // Upper salary bound; nil when undisclosed.
	Location     string    // Where the position is based.
	PostedBy     uuid.UUID // The employer account that created the listing.
	IsPremium    bool      // Premium listings are surfaced more prominently.
	IsActive     bool      // Deactivated listings disappear from the public list.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SavedJob is a bookmark; at most one exists per (user, job) pair.
type SavedJob struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	JobID   uuid.UUID
	Job     *Job // Populated on reads that join the listing.
	SavedAt time.Time
}

// ApplicationStatus tracks where a submission sits in the hiring funnel.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	ApplicationStatusRejected ApplicationStatus = "rejected"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
)

// JobApplication is a seeker's submission for a listing; one per
// (job, applicant) pair.
type JobApplication struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	Job         *Job // Populated on reads that join the listing.
	ApplicantID uuid.UUID
	CoverLetter string
	ResumeURL   string            // Where the uploaded resume lives.
	Status      ApplicationStatus // Defaults to "pending".
	AppliedAt   time.Time
}
