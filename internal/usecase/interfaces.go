package usecase

import (
	"context"

	"devconnect/internal/infrastructure/github"
)

// FirebaseAuthClient abstracts the identity provider so use cases can be
// tested without Firebase.
type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	GenerateToken(ctx context.Context, uid string) (string, error)
	SignInWithEmailPassword(ctx context.Context, email, password string) (string, string, error)
}

// GithubOAuthClient abstracts the GitHub OAuth exchange for social login.
type GithubOAuthClient interface {
	ExchangeCode(ctx context.Context, code string) (string, error)
	GetUser(ctx context.Context, accessToken string) (*github.User, error)
}
