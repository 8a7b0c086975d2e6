package service

import (
	"context"
	"errors"
	"testing"

	"github.com/devfolio/backend/internal/repository"
	"github.com/devfolio/backend/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
		FullName: "Alice Dev",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Empty(t, resp.User.PasswordHash)
	assert.Equal(t, "alice", resp.User.Username)

	login, err := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
	assert.Empty(t, login.User.PasswordHash)
}

func TestRegisterConflicts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))
	ctx := context.Background()

	base := RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
		FullName: "Alice Dev",
	}
	_, err := svc.Register(ctx, base)
	require.NoError(t, err)

	dupEmail := base
	dupEmail.Username = "other"
	_, err = svc.Register(ctx, dupEmail)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 409, appErr.Code)

	dupUsername := base
	dupUsername.Email = "other@example.com"
	_, err = svc.Register(ctx, dupUsername)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 409, appErr.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
		FullName: "Alice Dev",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	// An unknown email reads the same as a bad password.
	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
