package repository

import (
	"context"

	"devconnect/internal/domain/entity"
)

type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, id string) (*entity.Job, error)
	ListActive(ctx context.Context, limit, offset int) ([]*entity.Job, int64, error)

	// ListByPoster returns every listing the user posted, active or not.
	ListByPoster(ctx context.Context, userID string, limit, offset int) ([]*entity.Job, int64, error)
}
