package repository

import (
	"context"

	"github.com/devfolio/backend/internal/model"
	"gorm.io/gorm"
)

type TagRepository interface {
	// FindByName matches the exact (already trimmed) name, case-sensitive.
	FindByName(ctx context.Context, name string) (*model.Tag, error)
	Create(ctx context.Context, tag *model.Tag) error
	// ReplaceProjectTags swaps the project's tag set for exactly tags and
	// bumps usage_count of every member, all in one transaction.
	ReplaceProjectTags(ctx context.Context, project *model.Project, tags []model.Tag) error
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) FindByName(ctx context.Context, name string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) ReplaceProjectTags(ctx context.Context, project *model.Project, tags []model.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(project).Association("Tags").Replace(tags); err != nil {
			return err
		}

		if len(tags) == 0 {
			return nil
		}

		ids := make([]uint, 0, len(tags))
		for _, tag := range tags {
			ids = append(ids, tag.ID)
		}

		// Every associated tag counts once per sync, not once per new link.
		return tx.Model(&model.Tag{}).
			Where("id IN ?", ids).
			UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
	})
}
