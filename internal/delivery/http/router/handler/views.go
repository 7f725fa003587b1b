package handler

import (
	"time"

	"jobdesk/internal/domain/entity"

	"github.com/google/uuid"
)

// userView is the public shape of a user account. Credentials never appear
// here.
type userView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	UserType  string    `json:"user_type"`
	Bio       string    `json:"bio,omitempty"`
	Location  string    `json:"location,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Picture   string    `json:"picture,omitempty"`
	IsPremium bool      `json:"is_premium"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(user *entity.User) *userView {
	if user == nil {
		return nil
	}

	return &userView{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		UserType:  string(user.UserType),
		Bio:       user.Bio,
		Location:  user.Location,
		Phone:     user.Phone,
		Picture:   user.Picture,
		IsPremium: user.IsPremium,
		CreatedAt: user.CreatedAt,
	}
}

// jobView is the public shape of a listing, with viewer-specific state.
type jobView struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	JobType      string    `json:"job_type"`
	SalaryMin    *float64  `json:"salary_min,omitempty"`
	SalaryMax    *float64  `json:"salary_max,omitempty"`
	Location     string    `json:"location"`
	PostedBy     uuid.UUID `json:"posted_by"`
	IsPremium    bool      `json:"is_premium"`
	IsActive     bool      `json:"is_active"`
	IsSaved      bool      `json:"is_saved"`
	CreatedAt    time.Time `json:"created_at"`
}

func newJobView(job *entity.Job, isSaved bool) *jobView {
	if job == nil {
		return nil
	}

	return &jobView{
		ID:           job.ID,
		Title:        job.Title,
		Company:      job.Company,
		Description:  job.Description,
		Requirements: job.Requirements,
		JobType:      string(job.JobType),
		SalaryMin:    job.SalaryMin,
		SalaryMax:    job.SalaryMax,
		Location:     job.Location,
		PostedBy:     job.PostedBy,
		IsPremium:    job.IsPremium,
		IsActive:     job.IsActive,
		IsSaved:      isSaved,
		CreatedAt:    job.CreatedAt,
	}
}

// savedJobView is a bookmark with its listing joined.
type savedJobView struct {
	ID      uuid.UUID `json:"id"`
	JobID   uuid.UUID `json:"job_id"`
	Job     *jobView  `json:"job,omitempty"`
	SavedAt time.Time `json:"saved_at"`
}

func newSavedJobView(saved *entity.SavedJob) *savedJobView {
	view := &savedJobView{
		ID:      saved.ID,
		JobID:   saved.JobID,
		SavedAt: saved.SavedAt,
	}
	if saved.Job != nil {
		view.Job = newJobView(saved.Job, true)
	}

	return view
}

// applicationView is a submitted application with its listing joined.
type applicationView struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	Job         *jobView  `json:"job,omitempty"`
	CoverLetter string    `json:"cover_letter"`
	ResumeURL   string    `json:"resume_url,omitempty"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
}

func newApplicationView(application *entity.JobApplication) *applicationView {
	view := &applicationView{
		ID:          application.ID,
		JobID:       application.JobID,
		CoverLetter: application.CoverLetter,
		ResumeURL:   application.ResumeURL,
		Status:      string(application.Status),
		AppliedAt:   application.AppliedAt,
	}
	if application.Job != nil {
		view.Job = newJobView(application.Job, false)
	}

	return view
}

// authMethodView lists a linked login provider without exposing secrets.
type authMethodView struct {
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
}

func newAuthMethodViews(auths []*entity.Authentication) []*authMethodView {
	views := make([]*authMethodView, 0, len(auths))
	for _, auth := range auths {
		views = append(views, &authMethodView{
			Provider:  string(auth.Provider),
			CreatedAt: auth.CreatedAt,
		})
	}

	return views
}
