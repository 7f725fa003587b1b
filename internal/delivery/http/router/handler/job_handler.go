package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"jobdesk/internal/delivery/http/middleware"
	"jobdesk/internal/delivery/http/response"
	"jobdesk/internal/domain/entity"
	"jobdesk/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// JobHandler holds dependencies for job listing handlers.
type JobHandler struct {
	uc     usecase.JobUsecase
	logger *slog.Logger
}

// NewJobHandler is the constructor for JobHandler, injected by Fx.
func NewJobHandler(uc usecase.JobUsecase, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		uc:     uc,
		logger: logger,
	}
}

type createJobRequest struct {
	Title        string   `json:"title" validate:"required"`
	Company      string   `json:"company" validate:"required"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	JobType      string   `json:"job_type" validate:"required,oneof=full_time part_time contract internship"`
	SalaryMin    *float64 `json:"salary_min"`
	SalaryMax    *float64 `json:"salary_max"`
	Location     string   `json:"location"`
}

type updateJobRequest struct {
	Title        *string  `json:"title"`
	Company      *string  `json:"company"`
	Description  *string  `json:"description"`
	Requirements []string `json:"requirements"`
	JobType      *string  `json:"job_type"`
	SalaryMin    *float64 `json:"salary_min"`
	SalaryMax    *float64 `json:"salary_max"`
	Location     *string  `json:"location"`
}

type saveJobRequest struct {
	JobID string `json:"job_id" validate:"required,uuid"`
}

type applyRequest struct {
	CoverLetter string `json:"cover_letter"`
	ResumeURL   string `json:"resume_url" validate:"omitempty,url"`
}

// ListJobs returns the public job board, with saved state for logged-in
// viewers.
func (h *JobHandler) ListJobs(c echo.Context) error {
	input := &usecase.ListJobsInput{
		JobType:  entity.JobType(c.QueryParam("job_type")),
		Location: c.QueryParam("location"),
		Search:   c.QueryParam("search"),
	}
	input.Page, _ = strconv.Atoi(c.QueryParam("page"))
	input.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))

	if viewerID, ok := middleware.UserID(c); ok {
		input.UserID = &viewerID
	}

	output, err := h.uc.ListJobs(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*jobView, 0, len(output.Jobs))
	for _, job := range output.Jobs {
		views = append(views, newJobView(job.Job, job.IsSaved))
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"jobs":      views,
		"total":     output.Total,
		"page":      output.Page,
		"page_size": output.PageSize,
	}, "Jobs retrieved successfully")
}

// GetJob returns one listing.
func (h *JobHandler) GetJob(c echo.Context) error {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_FORMAT", "Invalid job ID")
	}

	var viewerID *uuid.UUID
	if id, ok := middleware.UserID(c); ok {
		viewerID = &id
	}

	view, err := h.uc.GetJob(c.Request().Context(), jobID, viewerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newJobView(view.Job, view.IsSaved), "Job retrieved successfully")
}

// CreateJob posts a new listing for the authenticated employer.
func (h *JobHandler) CreateJob(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_FORMAT", "Invalid job input")
	}
	if err := c.Validate(&req); err != nil {
		return bindValidationError(c, err)
	}

	job, err := h.uc.CreateJob(c.Request().Context(), &usecase.CreateJobInput{
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Requirements: req.Requirements,
		JobType:      entity.JobType(req.JobType),
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Location:     req.Location,
		PostedBy:     userID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newJobView(job, false), "Job posted successfully")
}

// UpdateJob modifies a listing owned by the caller.
func (h *JobHandler) UpdateJob(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_FORMAT", "Invalid job ID")
	}

	var req updateJobRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_FORMAT", "Invalid job input")
	}

	input := &usecase.UpdateJobInput{
		JobID:        jobID,
		ActorID:      userID,
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Requirements: req.Requirements,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Location:     req.Location,
	}
	if req.JobType != nil {
		jobType := entity.JobType(*req.JobType)
		input.JobType = &jobType
	}

	job, err := h.uc.UpdateJob(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newJobView(job, false), "Job updated successfully")
}

// DeactivateJob soft-deletes a listing owned by the caller.
func (h *JobHandler) DeactivateJob(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_FORMAT", "Invalid job ID")
	}

	if err := h.uc.DeactivateJob(c.Request().Context(), jobID, userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Job deactivated"}, "Job deactivated successfully")
}

// SaveJob bookmarks a job; saving twice reports the existing bookmark.
func (h *JobHandler) SaveJob(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	var req saveJobRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_FORMAT", "Invalid save input")
	}
	if err := c.Validate(&req); err != nil {
		return bindValidationError(c, err)
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return response.BadRequest(c, "INVALID_FORMAT", "Invalid job ID")
	}

	output, err := h.uc.SaveJob(c.Request().Context(), userID, jobID)
	if err != nil {
		return errors.WithStack(err)
	}

	if !output.Created {
		return response.Success(c, http.StatusOK, newSavedJobView(output.SavedJob), "Job already saved")
	}

	return response.Success(c, http.StatusCreated, newSavedJobView(output.SavedJob), "Job saved successfully")
}

// UnsaveJob removes a bookmark.
func (h *JobHandler) UnsaveJob(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_FORMAT", "Invalid job ID")
	}

	if err := h.uc.UnsaveJob(c.Request().Context(), userID, jobID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Job unsaved"}, "Job unsaved successfully")
}

// CheckSaved reports whether the caller bookmarked the job.
func (h *JobHandler) CheckSaved(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_FORMAT", "Invalid job ID")
	}

	saved, err := h.uc.IsJobSaved(c.Request().Context(), userID, jobID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"is_saved": saved}, "Saved state retrieved")
}

// ListSavedJobs returns the caller's bookmarks, newest first.
func (h *JobHandler) ListSavedJobs(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	saved, err := h.uc.ListSavedJobs(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*savedJobView, 0, len(saved))
	for _, s := range saved {
		views = append(views, newSavedJobView(s))
	}

	return response.Success(c, http.StatusOK, views, "Saved jobs retrieved successfully")
}

// Apply submits an application for a listing.
func (h *JobHandler) Apply(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_FORMAT", "Invalid job ID")
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_FORMAT", "Invalid application input")
	}
	if err := c.Validate(&req); err != nil {
		return bindValidationError(c, err)
	}

	application, err := h.uc.Apply(c.Request().Context(), &usecase.ApplyInput{
		JobID:       jobID,
		ApplicantID: userID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newApplicationView(application), "Application submitted successfully")
}

// ListMyApplications returns the caller's applications, newest first.
func (h *JobHandler) ListMyApplications(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Authentication required")
	}

	applications, err := h.uc.ListMyApplications(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*applicationView, 0, len(applications))
	for _, application := range applications {
		views = append(views, newApplicationView(application))
	}

	return response.Success(c, http.StatusOK, views, "Applications retrieved successfully")
}
