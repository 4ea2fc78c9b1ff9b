package service

import (
	"context"
	"testing"
	"time"

	"askhub/internal/dto"
	"askhub/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(newMemReviewerStore(), jwtManager, zap.NewNop())
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "reviewer1",
		Email:    "reviewer@askhub.dev",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "reviewer1", resp.Reviewer.Username)

	login, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "reviewer@askhub.dev",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.Reviewer.ID, login.Reviewer.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "reviewer1", Email: "reviewer@askhub.dev", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Username: "reviewer2", Email: "reviewer@askhub.dev", Password: "other-pass",
	})
	assert.ErrorIs(t, err, ErrReviewerExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "reviewer1", Email: "reviewer@askhub.dev", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &dto.LoginRequest{
		Email: "reviewer@askhub.dev", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{
		Email: "unknown@askhub.dev", Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "reviewer1", Email: "reviewer@askhub.dev", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Reviewer.ID, refreshed.Reviewer.ID)

	_, err = svc.RefreshToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
