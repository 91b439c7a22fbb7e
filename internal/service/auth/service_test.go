package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink/healthcare-api/internal/model"
	"github.com/carelink/healthcare-api/internal/repository"
	"github.com/carelink/healthcare-api/pkg/auth"
	apperrors "github.com/carelink/healthcare-api/pkg/errors"
	"github.com/carelink/healthcare-api/pkg/security"
)

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	u.ID = f.nextID
	f.nextID++
	copy := *u
	f.users[u.ID] = &copy
	return nil
}

func (f *fakeUserRepo) Get(ctx context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *u
	return &copy, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func newTestService() (Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:             "test-secret",
		RefreshSecret:      "test-refresh-secret",
		ExpiryMinutes:      60,
		RefreshExpiryHours: 24,
	})
	// Minimum bcrypt cost keeps the tests fast.
	hasher := security.NewBcryptHasher(4)
	return NewService(repo, jwtSvc, hasher), repo
}

func registerRequest() *model.RegisterRequest {
	return &model.RegisterRequest{
		Email:           "alice@example.com",
		Name:            "Alice Smith",
		Password:        "sekret123",
		PasswordConfirm: "sekret123",
	}
}

func TestRegister(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.NotZero(t, resp.User.ID)
	assert.True(t, resp.User.IsActive)
	assert.NotEmpty(t, resp.Tokens.Access)
	assert.NotEmpty(t, resp.Tokens.Refresh)

	stored := repo.users[resp.User.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "sekret123", stored.PasswordHash, "password stored hashed")
}

func TestRegisterPasswordMismatch(t *testing.T) {
	svc, _ := newTestService()

	req := registerRequest()
	req.PasswordConfirm = "different1"
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.TypeValidation, appErr.Type)
	assert.Contains(t, appErr.Details, "password_confirm")
}

func TestRegisterWeakPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := registerRequest()
	req.Password = "short1"
	req.PasswordConfirm = "short1"
	_, err := svc.Register(ctx, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeValidation))

	req = registerRequest()
	req.Password = "onlyletters"
	req.PasswordConfirm = "onlyletters"
	_, err = svc.Register(ctx, req)
	require.Error(t, err)
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Details, "password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest())
	require.Error(t, err)
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.TypeValidation, appErr.Type)
	assert.Contains(t, appErr.Details, "email")
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &model.LoginRequest{
		Email:    "alice@example.com",
		Password: "sekret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Tokens.Access)

	claims, err := svc.ValidateToken(ctx, resp.Tokens.Access)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	// Wrong password and unknown email produce the same message.
	_, err = svc.Login(ctx, &model.LoginRequest{Email: "alice@example.com", Password: "wrong1234"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeAuthentication))
	assert.Equal(t, "Invalid email or password.", apperrors.As(err).Message)

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "nobody@example.com", Password: "sekret123"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeAuthentication))
	assert.Equal(t, "Invalid email or password.", apperrors.As(err).Message)

	// Deactivated accounts cannot log in either.
	repo.users[registered.User.ID].IsActive = false
	_, err = svc.Login(ctx, &model.LoginRequest{Email: "alice@example.com", Password: "sekret123"})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeAuthentication))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ValidateToken(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeUnauthorized))
}

func TestValidateTokenRejectsRefreshToken(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	// A refresh token must not pass as an access token.
	_, err = svc.ValidateToken(ctx, resp.Tokens.Refresh)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeUnauthorized))
}
