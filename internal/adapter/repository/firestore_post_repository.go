package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"devconnect/internal/domain/entity"
	"devconnect/internal/domain/repository"
	"devconnect/pkg/errors"
	"devconnect/pkg/logger"
)

type firestorePostRepository struct {
	client *firestore.Client
}

func NewFirestorePostRepository(client *firestore.Client) repository.PostRepository {
	return &firestorePostRepository{
		client: client,
	}
}

func (r *firestorePostRepository) Create(ctx context.Context, post *entity.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []entity.PostComment{}
	}

	_, err := r.client.Collection("posts").Doc(post.ID).Set(ctx, post)
	if err != nil {
		return errors.Internal("Failed to create post", err)
	}

	return nil
}

func (r *firestorePostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	doc, err := r.client.Collection("posts").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Post", nil)
		}
		return nil, errors.Internal("Failed to get post", err)
	}

	var post entity.Post
	if err := doc.DataTo(&post); err != nil {
		return nil, errors.Internal("Failed to parse post data", err)
	}

	return &post, nil
}

func (r *firestorePostRepository) List(ctx context.Context, limit, offset int) ([]*entity.Post, int64, error) {
	query := r.client.Collection("posts").Where("isPublished", "==", true).OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while listing posts: %v", err)
		return nil, 0, errors.Internal("Failed to list posts", err)
	}

	total := int64(len(allDocs))

	start := offset
	end := len(allDocs)
	if limit > 0 {
		end = start + limit
		if end > len(allDocs) {
			end = len(allDocs)
		}
	}
	if start > len(allDocs) {
		start = len(allDocs)
	}

	var posts []*entity.Post
	for i := start; i < end; i++ {
		var post entity.Post
		if err := allDocs[i].DataTo(&post); err != nil {
			logger.Warn("Skipping malformed post document: %v", err)
			continue
		}
		posts = append(posts, &post)
	}

	return posts, total, nil
}

func (r *firestorePostRepository) Update(ctx context.Context, post *entity.Post) error {
	post.UpdatedAt = time.Now()

	_, err := r.client.Collection("posts").Doc(post.ID).Set(ctx, post)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Post", err)
		}
		return errors.Internal("Failed to update post", err)
	}

	return nil
}

func (r *firestorePostRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("posts").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete post", err)
	}
	return nil
}

func (r *firestorePostRepository) AddComment(ctx context.Context, postID string, comment *entity.PostComment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()
	if comment.Likes == nil {
		comment.Likes = []string{}
	}

	_, err := r.client.Collection("posts").Doc(postID).Update(ctx, []firestore.Update{
		{Path: "comments", Value: firestore.ArrayUnion(comment)},
		{Path: "updatedAt", Value: comment.CreatedAt},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Post", err)
		}
		return errors.Internal("Failed to add comment", err)
	}

	return nil
}

func (r *firestorePostRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	postRef := r.client.Collection("posts").Doc(postID)

	liked := false
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(postRef)
		if err != nil {
			return err
		}

		var post entity.Post
		if err := doc.DataTo(&post); err != nil {
			return err
		}

		var op interface{}
		if post.IsLikedBy(userID) {
			op = firestore.ArrayRemove(userID)
		} else {
			op = firestore.ArrayUnion(userID)
			liked = true
		}

		return tx.Update(postRef, []firestore.Update{
			{Path: "likes", Value: op},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, errors.NotFound("Post", err)
		}
		return false, errors.Internal("Failed to toggle like", err)
	}

	return liked, nil
}

func (r *firestorePostRepository) IncrementViewCount(ctx context.Context, postID string) error {
	_, err := r.client.Collection("posts").Doc(postID).Update(ctx, []firestore.Update{
		{Path: "viewCount", Value: firestore.Increment(1)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Post", err)
		}
		return errors.Internal("Failed to increment view count", err)
	}
	return nil
}
