package service

import (
	"context"
	"testing"

	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/internal/repository"
	"github.com/devfolio/backend/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Go", "go"},
		{"Machine Learning", "machine-learning"},
		{"C++", "c"},
		{"  spaced  out  ", "spaced-out"},
		{"already-slugged", "already-slugged"},
		{"UPPER_case.mix", "upper-case-mix"},
		{"--!!--", ""},
		{"v2.0", "v2-0"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.name), "Slugify(%q)", tc.name)
	}
}

func TestFindOrCreateTag(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTagService(repository.NewTagRepository(db))
	ctx := context.Background()

	created, err := svc.FindOrCreate(ctx, "  Machine Learning  ")
	require.NoError(t, err)
	assert.Equal(t, "Machine Learning", created.Name)
	assert.Equal(t, "machine-learning", created.Slug)

	again, err := svc.FindOrCreate(ctx, "Machine Learning")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	// Names are matched case-sensitively, so a different casing is a new tag.
	other, err := svc.FindOrCreate(ctx, "machine learning")
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, other.ID)
	assert.Equal(t, created.Slug, other.Slug)

	_, err = svc.FindOrCreate(ctx, "   ")
	assert.ErrorIs(t, err, apperror.ErrInvalidTag)

	var count int64
	require.NoError(t, db.Model(&model.Tag{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSyncProjectTags(t *testing.T) {
	db := setupTestDB(t)
	tagSvc := NewTagService(repository.NewTagRepository(db))
	projectSvc := newTestProjectService(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "tagger")
	project, err := projectSvc.Create(ctx, owner.ID, ProjectInput{Title: "Tagged Project"})
	require.NoError(t, err)

	// Duplicates after trimming collapse into one association.
	require.NoError(t, tagSvc.SyncProjectTags(ctx, project, []string{"Go", " Go ", "Docker"}))

	got, err := projectSvc.GetDetail(ctx, project.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 2)

	usage := map[string]int{}
	for _, tag := range got.Tags {
		usage[tag.Name] = tag.UsageCount
	}
	assert.EqualValues(t, 1, usage["Go"])
	assert.EqualValues(t, 1, usage["Docker"])

	// A second sync keeps counting, even for tags already on the project.
	require.NoError(t, tagSvc.SyncProjectTags(ctx, project, []string{"Go"}))

	got, err = projectSvc.GetDetail(ctx, project.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "Go", got.Tags[0].Name)
	assert.EqualValues(t, 2, got.Tags[0].UsageCount)

	// Docker is detached but its row and count survive for other projects.
	var docker model.Tag
	require.NoError(t, db.Where("name = ?", "Docker").First(&docker).Error)
	assert.EqualValues(t, 1, docker.UsageCount)

	err = tagSvc.SyncProjectTags(ctx, project, []string{"Go", ""})
	assert.ErrorIs(t, err, apperror.ErrInvalidTag)
}
