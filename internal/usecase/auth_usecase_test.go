package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconnect/internal/domain/entity"
	"devconnect/internal/infrastructure/github"
	"devconnect/pkg/errors"
)

type fakeFirebaseAuth struct {
	createErr    error
	createdUsers map[string]string // email -> uid
	nextUID      string
}

func newFakeFirebaseAuth() *fakeFirebaseAuth {
	return &fakeFirebaseAuth{createdUsers: make(map[string]string), nextUID: "uid-new"}
}

func (f *fakeFirebaseAuth) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.createdUsers[email] = f.nextUID
	return f.nextUID, nil
}

func (f *fakeFirebaseAuth) VerifyToken(ctx context.Context, token string) (string, error) {
	return "", errors.Unauthorized("Invalid token", nil)
}

func (f *fakeFirebaseAuth) GenerateToken(ctx context.Context, uid string) (string, error) {
	return "token-for-" + uid, nil
}

func (f *fakeFirebaseAuth) SignInWithEmailPassword(ctx context.Context, email, password string) (string, string, error) {
	uid, ok := f.createdUsers[email]
	if !ok {
		return "", "", errors.Unauthorized("Invalid email or password", nil)
	}
	return "token-for-" + uid, uid, nil
}

type fakeGithubClient struct {
	exchangeErr error
	userErr     error
	user        *github.User
}

func (f *fakeGithubClient) ExchangeCode(ctx context.Context, code string) (string, error) {
	if f.exchangeErr != nil {
		return "", f.exchangeErr
	}
	return "gh-access-token", nil
}

func (f *fakeGithubClient) GetUser(ctx context.Context, accessToken string) (*github.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.user, nil
}

func TestLoginWithGithubCreatesAccountOnFirstLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	gh := &fakeGithubClient{user: &github.User{
		Login:     "octocat",
		Email:     "octocat@example.com",
		AvatarURL: "https://avatars.example.com/octocat",
		HTMLURL:   "https://github.com/octocat",
		Bio:       "Building things",
	}}
	uc := NewAuthUseCase(newFakeFirebaseAuth(), gh, userRepo)

	result, err := uc.LoginWithGithub(context.Background(), GithubLoginInput{Code: "abc"})
	require.NoError(t, err)

	assert.Equal(t, "token-for-uid-new", result.Token)
	assert.Equal(t, "octocat", result.User.Username)
	assert.Equal(t, "octocat@example.com", result.User.Email)
	assert.Equal(t, "https://github.com/octocat", result.User.GithubURL)
	assert.Equal(t, "https://avatars.example.com/octocat", result.User.Avatar)
	assert.Equal(t, "Building things", result.User.Bio)

	stored, err := userRepo.GetByID(context.Background(), "uid-new")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/octocat", stored.GithubURL)
}

func TestLoginWithGithubReusesExistingAccount(t *testing.T) {
	existing := &entity.User{ID: "u1", Email: "octocat@example.com", Username: "octocat"}
	userRepo := newFakeUserRepo(existing)
	auth := newFakeFirebaseAuth()
	gh := &fakeGithubClient{user: &github.User{Login: "octocat", Email: "octocat@example.com"}}
	uc := NewAuthUseCase(auth, gh, userRepo)

	result, err := uc.LoginWithGithub(context.Background(), GithubLoginInput{Code: "abc"})
	require.NoError(t, err)

	assert.Equal(t, "u1", result.User.ID)
	assert.Equal(t, "token-for-u1", result.Token)
	assert.Empty(t, auth.createdUsers)
}

func TestLoginWithGithubFallsBackToLoginEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	gh := &fakeGithubClient{user: &github.User{Login: "ghost"}}
	uc := NewAuthUseCase(newFakeFirebaseAuth(), gh, userRepo)

	result, err := uc.LoginWithGithub(context.Background(), GithubLoginInput{Code: "abc"})
	require.NoError(t, err)

	// Private GitHub emails collapse to a synthetic address.
	assert.Equal(t, "ghost@github.com", result.User.Email)
}

func TestLoginWithGithubRejectsBadCode(t *testing.T) {
	userRepo := newFakeUserRepo()
	gh := &fakeGithubClient{exchangeErr: errors.Unauthorized("bad code", nil)}
	uc := NewAuthUseCase(newFakeFirebaseAuth(), gh, userRepo)

	_, err := uc.LoginWithGithub(context.Background(), GithubLoginInput{Code: "bad"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
	assert.Empty(t, userRepo.users)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	existing := &entity.User{ID: "u1", Email: "taken@example.com", Username: "taken"}
	uc := NewAuthUseCase(newFakeFirebaseAuth(), &fakeGithubClient{}, newFakeUserRepo(existing))

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:    "taken@example.com",
		Password: "password123",
		Username: "newuser",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestRegisterAndLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	uc := NewAuthUseCase(newFakeFirebaseAuth(), &fakeGithubClient{}, userRepo)

	result, err := uc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "password123",
		Username: "alice",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "alice", result.User.Username)

	login, err := uc.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
}
