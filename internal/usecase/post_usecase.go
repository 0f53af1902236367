package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"devconnect/internal/domain/entity"
	"devconnect/internal/domain/repository"
	"devconnect/pkg/errors"
	"devconnect/pkg/logger"
)

type PostUseCase struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostUseCase(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostUseCase {
	return &PostUseCase{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

type CreatePostInput struct {
	Title        string               `json:"title" validate:"required,min=1,max=200"`
	Content      string               `json:"content" validate:"required"`
	Tags         []string             `json:"tags,omitempty"`
	CodeSnippets []entity.CodeSnippet `json:"code_snippets,omitempty"`
	CoverImage   string               `json:"cover_image,omitempty"`
}

// UpdatePostInput carries partial edits; nil fields are left untouched.
type UpdatePostInput struct {
	Title        *string               `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content      *string               `json:"content,omitempty" validate:"omitempty,min=1"`
	Tags         *[]string             `json:"tags,omitempty"`
	CodeSnippets *[]entity.CodeSnippet `json:"code_snippets,omitempty"`
	CoverImage   *string               `json:"cover_image,omitempty"`
}

type AddCommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// PostResponse is a post hydrated with the author's public profile.
type PostResponse struct {
	*entity.Post
	Author *entity.User `json:"author"`
}

func (uc *PostUseCase) CreatePost(ctx context.Context, userID string, input CreatePostInput) (*PostResponse, error) {
	author, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post := &entity.Post{
		ID:           uuid.New().String(),
		Title:        input.Title,
		Content:      input.Content,
		AuthorID:     userID,
		Tags:         input.Tags,
		CodeSnippets: input.CodeSnippets,
		CoverImage:   input.CoverImage,
		Likes:        []string{},
		Comments:     []entity.PostComment{},
		IsPublished:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return &PostResponse{Post: post, Author: author.PublicProfile()}, nil
}

func (uc *PostUseCase) GetPost(ctx context.Context, postID string) (*PostResponse, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := uc.postRepo.IncrementViewCount(ctx, postID); err != nil {
		logger.Warn("Failed to bump view count for post %s: %v", postID, err)
	}

	return uc.hydratePost(ctx, post), nil
}

func (uc *PostUseCase) ListPosts(ctx context.Context, limit, offset int) ([]*PostResponse, int64, error) {
	posts, total, err := uc.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, uc.hydratePost(ctx, post))
	}
	return responses, total, nil
}

// UpdatePost applies the edits if the caller authored the post.
func (uc *PostUseCase) UpdatePost(ctx context.Context, userID, postID string, input UpdatePostInput) (*PostResponse, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, errors.Forbidden("Only the author can edit this post", nil)
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Tags != nil {
		post.Tags = *input.Tags
	}
	if input.CodeSnippets != nil {
		post.CodeSnippets = *input.CodeSnippets
	}
	if input.CoverImage != nil {
		post.CoverImage = *input.CoverImage
	}

	if err := uc.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return uc.hydratePost(ctx, post), nil
}

// DeletePost removes the post if the caller authored it.
func (uc *PostUseCase) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return errors.Forbidden("Only the author can delete this post", nil)
	}

	return uc.postRepo.Delete(ctx, postID)
}

func (uc *PostUseCase) AddComment(ctx context.Context, userID, postID string, input AddCommentInput) (*entity.PostComment, error) {
	if _, err := uc.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	comment := &entity.PostComment{
		ID:        uuid.New().String(),
		UserID:    userID,
		Content:   input.Content,
		Likes:     []string{},
		CreatedAt: time.Now(),
	}

	if err := uc.postRepo.AddComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// ToggleLike flips the caller's like and reports whether the post is now
// liked by them.
func (uc *PostUseCase) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	if _, err := uc.postRepo.GetByID(ctx, postID); err != nil {
		return false, err
	}
	return uc.postRepo.ToggleLike(ctx, postID, userID)
}

func (uc *PostUseCase) hydratePost(ctx context.Context, post *entity.Post) *PostResponse {
	author, err := uc.userRepo.GetByID(ctx, post.AuthorID)
	if err != nil {
		return &PostResponse{Post: post, Author: &entity.User{ID: post.AuthorID}}
	}
	return &PostResponse{Post: post, Author: author.PublicProfile()}
}
