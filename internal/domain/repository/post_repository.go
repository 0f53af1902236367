package repository

import (
	"context"

	"devconnect/internal/domain/entity"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Post, int64, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id string) error
	AddComment(ctx context.Context, postID string, comment *entity.PostComment) error

	// ToggleLike flips userID's like on the post and reports the new state.
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)
	IncrementViewCount(ctx context.Context, postID string) error
}
