package service

import (
	"context"
	"errors"
	"testing"

	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceSkillAssociations(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestProfileService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	goID := languageID(t, db, "Go")
	pyID := languageID(t, db, "Python")
	rustID := languageID(t, db, "Rust")

	require.NoError(t, svc.ReplaceSkillAssociations(ctx, user.ID, model.KindLanguage, []uint{goID, pyID, goID}))

	var rows []model.UserProgrammingLanguage
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&rows).Error)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, model.LevelBeginner, row.ExperienceLevel)
	}

	// A manually raised level does not survive a replace that retains the id.
	require.NoError(t, db.Model(&model.UserProgrammingLanguage{}).
		Where("user_id = ? AND programming_language_id = ?", user.ID, goID).
		Update("experience_level", model.LevelAdvanced).Error)

	require.NoError(t, svc.ReplaceSkillAssociations(ctx, user.ID, model.KindLanguage, []uint{goID, rustID}))

	rows = nil
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&rows).Error)
	require.Len(t, rows, 2)
	ids := map[uint]string{}
	for _, row := range rows {
		ids[row.ProgrammingLanguageID] = row.ExperienceLevel
	}
	assert.Equal(t, model.LevelBeginner, ids[goID])
	assert.Equal(t, model.LevelBeginner, ids[rustID])
	assert.NotContains(t, ids, pyID)
}

func TestReplaceSkillAssociationsUnknownID(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestProfileService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	goID := languageID(t, db, "Go")

	require.NoError(t, svc.ReplaceSkillAssociations(ctx, user.ID, model.KindLanguage, []uint{goID}))

	err := svc.ReplaceSkillAssociations(ctx, user.ID, model.KindLanguage, []uint{goID, 9999})
	assert.ErrorIs(t, err, apperror.ErrInvalidReference)

	// Nothing was written; the previous set is intact.
	var rows []model.UserProgrammingLanguage
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, goID, rows[0].ProgrammingLanguageID)
}

func TestReplaceSkillAssociationsEmptySet(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestProfileService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	require.NoError(t, svc.ReplaceSkillAssociations(ctx, user.ID, model.KindFramework, []uint{frameworkID(t, db, "Gin")}))
	require.NoError(t, svc.ReplaceSkillAssociations(ctx, user.ID, model.KindFramework, nil))

	var count int64
	require.NoError(t, db.Model(&model.UserFramework{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReplaceNamedSkills(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestProfileService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	require.NoError(t, svc.ReplaceNamedSkills(ctx, user.ID, []NamedSkillInput{
		{Name: "  Public Speaking  ", Level: model.LevelAdvanced},
		{Name: "Mentoring"},
		{Name: "   "},
	}))

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, profile.Skills, 2)
	assert.Equal(t, "Public Speaking", profile.Skills[0].Name)
	assert.Equal(t, model.LevelAdvanced, profile.Skills[0].Level)
	assert.Equal(t, "Mentoring", profile.Skills[1].Name)
	assert.Equal(t, model.LevelBeginner, profile.Skills[1].Level)
}

func TestReplaceOtherTechnologies(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestProfileService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	require.NoError(t, svc.ReplaceOtherTechnologies(ctx, user.ID, []string{" Terraform ", "", "Kafka"}))

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, profile.OtherTechnologies, 2)
	for _, tech := range profile.OtherTechnologies {
		assert.Equal(t, model.LevelBeginner, tech.ExperienceLevel)
	}

	require.NoError(t, svc.ReplaceOtherTechnologies(ctx, user.ID, []string{"Kafka"}))
	profile, err = svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, profile.OtherTechnologies, 1)
	assert.Equal(t, "Kafka", profile.OtherTechnologies[0].Name)
}

func TestGetProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestProfileService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.PasswordHash)
	assert.Equal(t, "alice", profile.Username)

	_, err = svc.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateProfileUsernameConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestProfileService(db)
	ctx := context.Background()

	createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	taken := "alice"
	_, err := svc.UpdateProfile(ctx, bob.ID, UpdateProfileInput{Username: &taken}, nil)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 409, appErr.Code)
}

func TestUpdateProfileFields(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestProfileService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")

	headline := "Backend Engineer"
	empty := ""
	name := "alice-dev"
	updated, err := svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{
		Username: &name,
		Headline: &headline,
		Bio:      &empty,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "alice-dev", updated.Username)
	require.NotNil(t, updated.Headline)
	assert.Equal(t, "Backend Engineer", *updated.Headline)
	assert.Nil(t, updated.Bio)

	short := "ab"
	_, err = svc.UpdateProfile(ctx, user.ID, UpdateProfileInput{Username: &short}, nil)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 422, appErr.Code)
}

func TestDestroyAccountRemovesOwnedRows(t *testing.T) {
	db := setupTestDB(t)
	profileSvc := newTestProfileService(db)
	projectSvc := newTestProjectService(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	project := createProject(t, projectSvc, alice.ID, "Doomed")
	keeper := createProject(t, projectSvc, bob.ID, "Keeper")

	require.NoError(t, profileSvc.ReplaceNamedSkills(ctx, alice.ID, []NamedSkillInput{{Name: "Writing"}}))
	require.NoError(t, profileSvc.ReplaceSkillAssociations(ctx, alice.ID, model.KindLanguage, []uint{languageID(t, db, "Go")}))

	require.NoError(t, profileSvc.DestroyAccount(ctx, alice.ID))

	_, err := profileSvc.GetProfile(ctx, alice.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&model.Project{}).Where("id = ?", project.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.UserSkill{}).Where("user_id = ?", alice.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.UserProgrammingLanguage{}).Where("user_id = ?", alice.ID).Count(&count).Error)
	assert.Zero(t, count)

	// Other accounts are untouched.
	_, err = projectSvc.GetDetail(ctx, keeper.ID, bob.ID)
	assert.NoError(t, err)
}
