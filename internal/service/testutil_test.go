package service

import (
	"testing"

	"github.com/devfolio/backend/internal/bootstrap"
	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/internal/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Every connection of an in-memory sqlite pool gets its own database;
	// pin the pool to one so migrations and queries see the same schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, bootstrap.Migrate(db))
	require.NoError(t, bootstrap.SeedLookups(db))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		FullName:     "Test User",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func languageID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()

	var row model.ProgrammingLanguage
	require.NoError(t, db.Where("name = ?", name).First(&row).Error)
	return row.ID
}

func frameworkID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()

	var row model.Framework
	require.NoError(t, db.Where("name = ?", name).First(&row).Error)
	return row.ID
}

func environmentID(t *testing.T, db *gorm.DB, name string) uint {
	t.Helper()

	var row model.Environment
	require.NoError(t, db.Where("name = ?", name).First(&row).Error)
	return row.ID
}

func newTestProjectService(db *gorm.DB) ProjectService {
	return NewProjectService(
		repository.NewProjectRepository(db),
		repository.NewUserRepository(db),
		repository.NewLookupRepository(db),
		NewTagService(repository.NewTagRepository(db)),
		nil,
	)
}

func newTestProfileService(db *gorm.DB) ProfileService {
	return NewProfileService(
		repository.NewUserRepository(db),
		repository.NewLookupRepository(db),
		nil,
		nil,
	)
}
