package usecase

import (
	"context"

	"devconnect/internal/domain/entity"
	"devconnect/internal/domain/repository"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.PublicProfile(), nil
}

func (uc *UserUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	users, total, err := uc.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	profiles := make([]*entity.User, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.PublicProfile())
	}
	return profiles, total, nil
}
