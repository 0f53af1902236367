package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconnect/internal/domain/entity"
	"devconnect/pkg/errors"
)

type fakePostRepo struct {
	posts map[string]*entity.Post
}

func newFakePostRepo(posts ...*entity.Post) *fakePostRepo {
	repo := &fakePostRepo{posts: make(map[string]*entity.Post)}
	for _, p := range posts {
		repo.posts[p.ID] = p
	}
	return repo
}

func (r *fakePostRepo) Create(ctx context.Context, post *entity.Post) error {
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, errors.NotFound("Post", nil)
	}
	return post, nil
}

func (r *fakePostRepo) List(ctx context.Context, limit, offset int) ([]*entity.Post, int64, error) {
	var posts []*entity.Post
	for _, p := range r.posts {
		posts = append(posts, p)
	}
	return posts, int64(len(posts)), nil
}

func (r *fakePostRepo) Update(ctx context.Context, post *entity.Post) error {
	if _, ok := r.posts[post.ID]; !ok {
		return errors.NotFound("Post", nil)
	}
	post.UpdatedAt = time.Now()
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id string) error {
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) AddComment(ctx context.Context, postID string, comment *entity.PostComment) error {
	post, ok := r.posts[postID]
	if !ok {
		return errors.NotFound("Post", nil)
	}
	post.Comments = append(post.Comments, *comment)
	return nil
}

func (r *fakePostRepo) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	post, ok := r.posts[postID]
	if !ok {
		return false, errors.NotFound("Post", nil)
	}
	for i, id := range post.Likes {
		if id == userID {
			post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
			return false, nil
		}
	}
	post.Likes = append(post.Likes, userID)
	return true, nil
}

func (r *fakePostRepo) IncrementViewCount(ctx context.Context, postID string) error {
	post, ok := r.posts[postID]
	if !ok {
		return errors.NotFound("Post", nil)
	}
	post.ViewCount++
	return nil
}

func testPost(id, authorID string) *entity.Post {
	return &entity.Post{
		ID:          id,
		Title:       "Original title",
		Content:     "Original content",
		AuthorID:    authorID,
		Tags:        []string{"go"},
		IsPublished: true,
	}
}

func strPtr(s string) *string { return &s }

func TestUpdatePostByAuthor(t *testing.T) {
	postRepo := newFakePostRepo(testPost("p1", "u1"))
	userRepo := newFakeUserRepo(&entity.User{ID: "u1", Username: "alice"})
	uc := NewPostUseCase(postRepo, userRepo)

	result, err := uc.UpdatePost(context.Background(), "u1", "p1", UpdatePostInput{
		Title: strPtr("Edited title"),
		Tags:  &[]string{"go", "firestore"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Edited title", result.Title)
	assert.Equal(t, []string{"go", "firestore"}, result.Tags)

	// Fields not present in the input stay as they were.
	assert.Equal(t, "Original content", result.Content)
}

func TestUpdatePostByNonAuthorForbidden(t *testing.T) {
	postRepo := newFakePostRepo(testPost("p1", "u1"))
	userRepo := newFakeUserRepo(&entity.User{ID: "u2", Username: "bob"})
	uc := NewPostUseCase(postRepo, userRepo)

	_, err := uc.UpdatePost(context.Background(), "u2", "p1", UpdatePostInput{Title: strPtr("Hijacked")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	assert.Equal(t, "Original title", postRepo.posts["p1"].Title)
}

func TestUpdateMissingPost(t *testing.T) {
	uc := NewPostUseCase(newFakePostRepo(), newFakeUserRepo())

	_, err := uc.UpdatePost(context.Background(), "u1", "nope", UpdatePostInput{Title: strPtr("x")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestDeletePostByAuthor(t *testing.T) {
	postRepo := newFakePostRepo(testPost("p1", "u1"))
	uc := NewPostUseCase(postRepo, newFakeUserRepo())

	require.NoError(t, uc.DeletePost(context.Background(), "u1", "p1"))
	assert.Empty(t, postRepo.posts)
}

func TestDeletePostByNonAuthorForbidden(t *testing.T) {
	postRepo := newFakePostRepo(testPost("p1", "u1"))
	uc := NewPostUseCase(postRepo, newFakeUserRepo())

	err := uc.DeletePost(context.Background(), "u2", "p1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	assert.Len(t, postRepo.posts, 1)
}

func TestToggleLikeFlipsState(t *testing.T) {
	postRepo := newFakePostRepo(testPost("p1", "u1"))
	uc := NewPostUseCase(postRepo, newFakeUserRepo())

	liked, err := uc.ToggleLike(context.Background(), "u2", "p1")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = uc.ToggleLike(context.Background(), "u2", "p1")
	require.NoError(t, err)
	assert.False(t, liked)
}
