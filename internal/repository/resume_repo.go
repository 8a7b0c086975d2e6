package repository

import (
	"context"

	"github.com/devfolio/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResumeRepository covers the education and experience rows of a profile.
type ResumeRepository interface {
	CreateEducation(ctx context.Context, row *model.UserEducation) error
	FindEducation(ctx context.Context, id uint, ownerID uuid.UUID) (*model.UserEducation, error)
	UpdateEducation(ctx context.Context, row *model.UserEducation) error
	DeleteEducation(ctx context.Context, row *model.UserEducation) error

	CreateExperience(ctx context.Context, row *model.UserExperience) error
	FindExperience(ctx context.Context, id uint, ownerID uuid.UUID) (*model.UserExperience, error)
	UpdateExperience(ctx context.Context, row *model.UserExperience) error
	DeleteExperience(ctx context.Context, row *model.UserExperience) error
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) CreateEducation(ctx context.Context, row *model.UserEducation) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *resumeRepository) FindEducation(ctx context.Context, id uint, ownerID uuid.UUID) (*model.UserEducation, error) {
	var row model.UserEducation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&row).Error; err != nil {
		return nil, orNotFound(err)
	}
	return &row, nil
}

func (r *resumeRepository) UpdateEducation(ctx context.Context, row *model.UserEducation) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *resumeRepository) DeleteEducation(ctx context.Context, row *model.UserEducation) error {
	return r.db.WithContext(ctx).Delete(row).Error
}

func (r *resumeRepository) CreateExperience(ctx context.Context, row *model.UserExperience) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *resumeRepository) FindExperience(ctx context.Context, id uint, ownerID uuid.UUID) (*model.UserExperience, error) {
	var row model.UserExperience
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&row).Error; err != nil {
		return nil, orNotFound(err)
	}
	return &row, nil
}

func (r *resumeRepository) UpdateExperience(ctx context.Context, row *model.UserExperience) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *resumeRepository) DeleteExperience(ctx context.Context, row *model.UserExperience) error {
	return r.db.WithContext(ctx).Delete(row).Error
}
