package handler

import (
	"github.com/labstack/echo/v4"

	"devconnect/internal/usecase"
	"devconnect/pkg/errors"
	"devconnect/pkg/response"
	"devconnect/pkg/utils"
)

type JobHandler struct {
	jobUseCase *usecase.JobUseCase
}

func NewJobHandler(jobUseCase *usecase.JobUseCase) *JobHandler {
	return &JobHandler{
		jobUseCase: jobUseCase,
	}
}

func (h *JobHandler) CreateJob(c echo.Context) error {
	var req usecase.CreateJobInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := getUserIDFromContext(c)
	job, err := h.jobUseCase.CreateJob(c.Request().Context(), uid, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, job)
}

func (h *JobHandler) GetJob(c echo.Context) error {
	jobID := c.Param("id")
	if jobID == "" {
		return response.Error(c, errors.BadRequest("Job ID is required", nil))
	}

	job, err := h.jobUseCase.GetJob(c.Request().Context(), jobID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, job)
}

func (h *JobHandler) ListJobs(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	jobs, total, err := h.jobUseCase.ListJobs(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, jobs, total, params.Page, params.PageSize)
}

func (h *JobHandler) ListMyJobs(c echo.Context) error {
	uid := getUserIDFromContext(c)
	params := utils.GetPaginationParams(c)

	jobs, total, err := h.jobUseCase.ListMyJobs(c.Request().Context(), uid, params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, jobs, total, params.Page, params.PageSize)
}
