package repository

import (
	"context"

	"github.com/devfolio/backend/internal/model"
	"gorm.io/gorm"
)

// LookupRepository reads the admin-curated reference tables. Listing hides
// inactive rows; existence checks do not, so rows disabled after being
// referenced keep validating.
type LookupRepository interface {
	ActiveLanguages(ctx context.Context) ([]model.ProgrammingLanguage, error)
	ActiveFrameworks(ctx context.Context) ([]model.Framework, error)
	ActiveDatabases(ctx context.Context) ([]model.Database, error)
	ActiveEnvironments(ctx context.Context) ([]model.Environment, error)
	ActiveStatuses(ctx context.Context) ([]model.Status, error)
	ActiveProjectTypes(ctx context.Context) ([]model.ProjectType, error)

	CountSkillRefs(ctx context.Context, kind model.SkillKind, ids []uint) (int64, error)
	HasEnvironment(ctx context.Context, id uint) (bool, error)
	HasStatus(ctx context.Context, id uint) (bool, error)
	HasDatabase(ctx context.Context, id uint) (bool, error)
	HasProjectType(ctx context.Context, id uint) (bool, error)
}

type lookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) LookupRepository {
	return &lookupRepository{db: db}
}

func (r *lookupRepository) activeQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Order("name ASC")
}

func (r *lookupRepository) ActiveLanguages(ctx context.Context) ([]model.ProgrammingLanguage, error) {
	var rows []model.ProgrammingLanguage
	if err := r.activeQuery(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *lookupRepository) ActiveFrameworks(ctx context.Context) ([]model.Framework, error) {
	var rows []model.Framework
	if err := r.activeQuery(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *lookupRepository) ActiveDatabases(ctx context.Context) ([]model.Database, error) {
	var rows []model.Database
	if err := r.activeQuery(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *lookupRepository) ActiveEnvironments(ctx context.Context) ([]model.Environment, error) {
	var rows []model.Environment
	if err := r.activeQuery(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *lookupRepository) ActiveStatuses(ctx context.Context) ([]model.Status, error) {
	var rows []model.Status
	if err := r.activeQuery(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *lookupRepository) ActiveProjectTypes(ctx context.Context) ([]model.ProjectType, error) {
	var rows []model.ProjectType
	if err := r.activeQuery(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *lookupRepository) CountSkillRefs(ctx context.Context, kind model.SkillKind, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := r.db.WithContext(ctx)
	switch kind {
	case model.KindLanguage:
		query = query.Model(&model.ProgrammingLanguage{})
	case model.KindFramework:
		query = query.Model(&model.Framework{})
	case model.KindDatabase:
		query = query.Model(&model.Database{})
	default:
		return 0, nil
	}

	var count int64
	if err := query.Where("id IN ?", ids).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *lookupRepository) HasEnvironment(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &model.Environment{}, id)
}

func (r *lookupRepository) HasStatus(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &model.Status{}, id)
}

func (r *lookupRepository) HasDatabase(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &model.Database{}, id)
}

func (r *lookupRepository) HasProjectType(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, &model.ProjectType{}, id)
}

func (r *lookupRepository) exists(ctx context.Context, mdl any, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(mdl).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
