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

type AuthUseCase struct {
	authClient   FirebaseAuthClient
	githubClient GithubOAuthClient
	userRepo     repository.UserRepository
}

func NewAuthUseCase(authClient FirebaseAuthClient, githubClient GithubOAuthClient, userRepo repository.UserRepository) *AuthUseCase {
	return &AuthUseCase{
		authClient:   authClient,
		githubClient: githubClient,
		userRepo:     userRepo,
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required,min=3,max=30"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GithubLoginInput struct {
	Code string `json:"code" validate:"required"`
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if existing, _ := uc.userRepo.GetByEmail(ctx, input.Email); existing != nil {
		return nil, errors.Conflict("Email already registered")
	}

	uid, err := uc.authClient.CreateUser(ctx, input.Email, input.Password, input.Username)
	if err != nil {
		logger.Error("Firebase user creation failed: %v", err)
		return nil, errors.BadRequest("Failed to create account", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:        uid,
		Email:     input.Email,
		Username:  input.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, _, err := uc.authClient.SignInWithEmailPassword(ctx, input.Email, input.Password)
	if err != nil {
		logger.Error("Post-registration sign-in failed: %v", err)
		return nil, errors.Internal("Account created but sign-in failed", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	token, uid, err := uc.authClient.SignInWithEmailPassword(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user}, nil
}

// LoginWithGithub exchanges an OAuth code for a GitHub profile, provisions a
// local account on first login, and issues a custom token for the user.
func (uc *AuthUseCase) LoginWithGithub(ctx context.Context, input GithubLoginInput) (*AuthResult, error) {
	accessToken, err := uc.githubClient.ExchangeCode(ctx, input.Code)
	if err != nil {
		logger.Error("GitHub code exchange failed: %v", err)
		return nil, errors.Unauthorized("GitHub authentication failed", err)
	}

	profile, err := uc.githubClient.GetUser(ctx, accessToken)
	if err != nil {
		logger.Error("GitHub profile fetch failed: %v", err)
		return nil, errors.Unauthorized("GitHub authentication failed", err)
	}

	// GitHub hides the email when the user marks it private.
	email := profile.Email
	if email == "" {
		email = profile.Login + "@github.com"
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	if user == nil {
		// The account only ever signs in through GitHub, so the password
		// is a throwaway.
		uid, err := uc.authClient.CreateUser(ctx, email, uuid.New().String(), profile.Login)
		if err != nil {
			logger.Error("Firebase user creation failed for GitHub login: %v", err)
			return nil, errors.Internal("Failed to provision account", err)
		}

		now := time.Now()
		user = &entity.User{
			ID:        uid,
			Email:     email,
			Username:  profile.Login,
			Avatar:    profile.AvatarURL,
			Bio:       profile.Bio,
			GithubURL: profile.HTMLURL,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	}

	token, err := uc.authClient.GenerateToken(ctx, user.ID)
	if err != nil {
		logger.Error("Token generation failed for GitHub login: %v", err)
		return nil, errors.Internal("Failed to issue token", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

func (uc *AuthUseCase) GetUserByID(ctx context.Context, uid string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, uid)
}
