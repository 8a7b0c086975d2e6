package service

import (
	"context"
	"testing"

	"github.com/devfolio/backend/internal/repository"
	"github.com/devfolio/backend/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestPortfolioService(db *gorm.DB) PortfolioService {
	return NewPortfolioService(
		repository.NewUserRepository(db),
		repository.NewProjectRepository(db),
		nil,
	)
}

func TestPublicProfile(t *testing.T) {
	db := setupTestDB(t)
	portfolioSvc := newTestPortfolioService(db)
	projectSvc := newTestProjectService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	createProject(t, projectSvc, alice.ID, "Public Project")

	hidden := false
	_, err := projectSvc.Create(ctx, alice.ID, ProjectInput{Title: "Secret Project", IsPublic: &hidden})
	require.NoError(t, err)

	view, err := portfolioSvc.PublicProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, view.User.PasswordHash)
	assert.Empty(t, view.User.Email)
	require.Len(t, view.Projects, 1)
	assert.Equal(t, "Public Project", view.Projects[0].Title)

	_, err = portfolioSvc.PublicProfile(ctx, "nobody")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestPublicProjectDetail(t *testing.T) {
	db := setupTestDB(t)
	portfolioSvc := newTestPortfolioService(db)
	projectSvc := newTestProjectService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")

	public := createProject(t, projectSvc, alice.ID, "Public Project")

	hidden := false
	private, err := projectSvc.Create(ctx, alice.ID, ProjectInput{Title: "Secret Project", IsPublic: &hidden})
	require.NoError(t, err)

	got, err := portfolioSvc.PublicProjectDetail(ctx, "alice", public.ID)
	require.NoError(t, err)
	assert.Equal(t, public.ID, got.ID)

	// Private projects and other owners' usernames both read as absent.
	_, err = portfolioSvc.PublicProjectDetail(ctx, "alice", private.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = portfolioSvc.PublicProjectDetail(ctx, "bob", public.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = portfolioSvc.PublicProjectDetail(ctx, "nobody", public.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSearchProjectsWithoutBackend(t *testing.T) {
	db := setupTestDB(t)
	portfolioSvc := newTestPortfolioService(db)
	ctx := context.Background()

	createTestUser(t, db, "alice")

	hits, err := portfolioSvc.SearchProjects(ctx, "alice", "anything")
	require.NoError(t, err)
	assert.Empty(t, hits)
}
