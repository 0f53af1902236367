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

type firestoreJobRepository struct {
	client *firestore.Client
}

func NewFirestoreJobRepository(client *firestore.Client) repository.JobRepository {
	return &firestoreJobRepository{
		client: client,
	}
}

func (r *firestoreJobRepository) Create(ctx context.Context, job *entity.Job) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	_, err := r.client.Collection("jobs").Doc(job.ID).Set(ctx, job)
	if err != nil {
		return errors.Internal("Failed to create job", err)
	}

	return nil
}

func (r *firestoreJobRepository) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	doc, err := r.client.Collection("jobs").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Job", nil)
		}
		return nil, errors.Internal("Failed to get job", err)
	}

	var job entity.Job
	if err := doc.DataTo(&job); err != nil {
		return nil, errors.Internal("Failed to parse job data", err)
	}

	return &job, nil
}

func (r *firestoreJobRepository) ListActive(ctx context.Context, limit, offset int) ([]*entity.Job, int64, error) {
	query := r.client.Collection("jobs").Where("isActive", "==", true).OrderBy("createdAt", firestore.Desc)
	return r.listJobs(ctx, query, limit, offset)
}

func (r *firestoreJobRepository) ListByPoster(ctx context.Context, userID string, limit, offset int) ([]*entity.Job, int64, error) {
	query := r.client.Collection("jobs").Where("postedBy", "==", userID).OrderBy("createdAt", firestore.Desc)
	return r.listJobs(ctx, query, limit, offset)
}

func (r *firestoreJobRepository) listJobs(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.Job, int64, error) {
	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while listing jobs: %v", err)
		return nil, 0, errors.Internal("Failed to list jobs", err)
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

	var jobs []*entity.Job
	for i := start; i < end; i++ {
		var job entity.Job
		if err := allDocs[i].DataTo(&job); err != nil {
			logger.Warn("Skipping malformed job document: %v", err)
			continue
		}
		jobs = append(jobs, &job)
	}

	return jobs, total, nil
}
