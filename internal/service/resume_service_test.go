package service

import (
	"context"
	"testing"
	"time"

	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/internal/repository"
	"github.com/devfolio/backend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestResumeService(db *gorm.DB) ResumeService {
	return NewResumeService(
		repository.NewResumeRepository(db),
		repository.NewCertificationRepository(db),
	)
}

func TestEducationCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestResumeService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	start := time.Date(2018, 9, 1, 0, 0, 0, 0, time.UTC)
	degree := "BSc"
	row, err := svc.CreateEducation(ctx, alice.ID, EducationInput{
		School:    "State University",
		Degree:    &degree,
		StartDate: start,
	})
	require.NoError(t, err)
	require.NotZero(t, row.ID)

	end := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	updated, err := svc.UpdateEducation(ctx, alice.ID, row.ID, EducationInput{
		School:    "State University",
		StartDate: start,
		EndDate:   &end,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.EndDate)
	assert.Nil(t, updated.Degree)

	// Another user's rows are invisible.
	_, err = svc.UpdateEducation(ctx, bob.ID, row.ID, EducationInput{School: "Elsewhere", StartDate: start})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteEducation(ctx, bob.ID, row.ID), apperror.ErrNotFound)

	require.NoError(t, svc.DeleteEducation(ctx, alice.ID, row.ID))
	_, err = svc.UpdateEducation(ctx, alice.ID, row.ID, EducationInput{School: "Gone", StartDate: start})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestExperienceCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestResumeService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	start := time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)
	row, err := svc.CreateExperience(ctx, alice.ID, ExperienceInput{
		Company:   "Acme",
		Title:     "Engineer",
		StartDate: start,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateExperience(ctx, alice.ID, row.ID, ExperienceInput{
		Company:   "Acme",
		Title:     "Senior Engineer",
		StartDate: start,
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer", updated.Title)

	_, err = svc.UpdateExperience(ctx, uuid.New(), row.ID, ExperienceInput{Company: "X", Title: "Y", StartDate: start})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func createCertification(t *testing.T, svc ResumeService, userID uuid.UUID, name string) *model.UserCertification {
	t.Helper()

	row, err := svc.CreateCertification(context.Background(), userID, CertificationInput{
		Name:   name,
		Issuer: "Cert Authority",
	})
	require.NoError(t, err)
	return row
}

func certPinOrders(t *testing.T, db *gorm.DB, userID uuid.UUID) map[string]int {
	t.Helper()

	var rows []model.UserCertification
	require.NoError(t, db.Where("user_id = ? AND pinned = ?", userID, true).Find(&rows).Error)

	orders := map[string]int{}
	for _, row := range rows {
		orders[row.Name] = row.PinOrder
	}
	return orders
}

func TestCertificationPinOrdering(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestResumeService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	a := createCertification(t, svc, alice.ID, "A")
	b := createCertification(t, svc, alice.ID, "B")
	c := createCertification(t, svc, alice.ID, "C")

	require.NoError(t, svc.PinCertification(ctx, alice.ID, a.ID))
	require.NoError(t, svc.PinCertification(ctx, alice.ID, b.ID))
	require.NoError(t, svc.PinCertification(ctx, alice.ID, c.ID))
	assert.Equal(t, map[string]int{"A": 1, "B": 2, "C": 3}, certPinOrders(t, db, alice.ID))

	require.NoError(t, svc.SetCertificationPinOrder(ctx, alice.ID, c.ID, 1))
	assert.Equal(t, map[string]int{"C": 1, "A": 2, "B": 3}, certPinOrders(t, db, alice.ID))

	require.NoError(t, svc.UnpinCertification(ctx, alice.ID, a.ID))
	assert.Equal(t, map[string]int{"C": 1, "B": 2}, certPinOrders(t, db, alice.ID))

	require.NoError(t, svc.DeleteCertification(ctx, alice.ID, c.ID))
	assert.Equal(t, map[string]int{"B": 1}, certPinOrders(t, db, alice.ID))

	assert.ErrorIs(t, svc.SetCertificationPinOrder(ctx, alice.ID, b.ID, 0), apperror.ErrInvalidOrder)
	assert.ErrorIs(t, svc.SetCertificationPinOrder(ctx, alice.ID, a.ID, 1), apperror.ErrInvalidOrder)
}

func TestCertificationDeleteUsesCurrentPinOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestResumeService(db)
	repo := repository.NewCertificationRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	a := createCertification(t, svc, alice.ID, "A")
	b := createCertification(t, svc, alice.ID, "B")
	c := createCertification(t, svc, alice.ID, "C")

	require.NoError(t, svc.PinCertification(ctx, alice.ID, a.ID))
	require.NoError(t, svc.PinCertification(ctx, alice.ID, b.ID))
	require.NoError(t, svc.PinCertification(ctx, alice.ID, c.ID))

	// Hold on to C at slot 3, then move it to the front before deleting.
	stale, err := repo.FindOwned(ctx, c.ID, alice.ID)
	require.NoError(t, err)
	require.NoError(t, svc.SetCertificationPinOrder(ctx, alice.ID, c.ID, 1))

	require.NoError(t, repo.Delete(ctx, stale))
	assert.Equal(t, map[string]int{"A": 1, "B": 2}, certPinOrders(t, db, alice.ID))
}

func TestCertificationOwnership(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestResumeService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	cert := createCertification(t, svc, alice.ID, "A")

	assert.ErrorIs(t, svc.PinCertification(ctx, bob.ID, cert.ID), apperror.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteCertification(ctx, bob.ID, cert.ID), apperror.ErrNotFound)

	_, err := svc.UpdateCertification(ctx, bob.ID, cert.ID, CertificationInput{Name: "Stolen", Issuer: "X"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
