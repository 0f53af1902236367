package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"devconnect/internal/domain/entity"
	"devconnect/internal/domain/repository"
	"devconnect/pkg/errors"
)

type JobUseCase struct {
	jobRepo  repository.JobRepository
	userRepo repository.UserRepository
}

func NewJobUseCase(jobRepo repository.JobRepository, userRepo repository.UserRepository) *JobUseCase {
	return &JobUseCase{
		jobRepo:  jobRepo,
		userRepo: userRepo,
	}
}

type CreateJobInput struct {
	Title        string            `json:"title" validate:"required,min=1,max=200"`
	Company      string            `json:"company" validate:"required"`
	Location     string            `json:"location,omitempty"`
	Remote       bool              `json:"remote"`
	Type         string            `json:"type" validate:"required,oneof=full-time part-time contract internship"`
	Salary       *entity.JobSalary `json:"salary,omitempty"`
	Description  string            `json:"description" validate:"required"`
	Requirements []string          `json:"requirements,omitempty"`
	Skills       []string          `json:"skills,omitempty"`
	ExpiryDate   *time.Time        `json:"expiry_date,omitempty"`
}

func (uc *JobUseCase) CreateJob(ctx context.Context, userID string, input CreateJobInput) (*entity.Job, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	now := time.Now()

	// Listings default to a 30 day lifetime.
	expiry := now.AddDate(0, 0, 30)
	if input.ExpiryDate != nil && input.ExpiryDate.After(now) {
		expiry = *input.ExpiryDate
	}

	job := &entity.Job{
		ID:           uuid.New().String(),
		Title:        input.Title,
		Company:      input.Company,
		Location:     input.Location,
		Remote:       input.Remote,
		Type:         input.Type,
		Salary:       input.Salary,
		Description:  input.Description,
		Requirements: input.Requirements,
		Skills:       input.Skills,
		PostedBy:     userID,
		IsActive:     true,
		ExpiryDate:   expiry,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

func (uc *JobUseCase) GetJob(ctx context.Context, jobID string) (*entity.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.IsActive || job.ExpiryDate.Before(time.Now()) {
		return nil, errors.NotFound("Job", nil)
	}
	return job, nil
}

func (uc *JobUseCase) ListJobs(ctx context.Context, limit, offset int) ([]*entity.Job, int64, error) {
	return uc.jobRepo.ListActive(ctx, limit, offset)
}

// ListMyJobs returns the caller's own listings, including inactive and
// expired ones so they can manage them.
func (uc *JobUseCase) ListMyJobs(ctx context.Context, userID string, limit, offset int) ([]*entity.Job, int64, error) {
	return uc.jobRepo.ListByPoster(ctx, userID, limit, offset)
}
