package repository

import (
	"context"

	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const projectTable = "projects"

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Project, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID, onlyPublic bool) ([]*model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	ReplaceLanguages(ctx context.Context, project *model.Project, languages []model.ProgrammingLanguage) error
	ReplaceFrameworks(ctx context.Context, project *model.Project, frameworks []model.Framework) error
	Delete(ctx context.Context, project *model.Project) error
	Pin(ctx context.Context, id, ownerID uuid.UUID) error
	Unpin(ctx context.Context, id, ownerID uuid.UUID) error
	SetPinOrder(ctx context.Context, id, ownerID uuid.UUID, newOrder int) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).
		Preload("Environment").
		Preload("Status").
		Preload("Database").
		Preload("ProjectType").
		Preload("Languages").
		Preload("Frameworks").
		Preload("Tags").
		Where("id = ?", id).
		First(&project).Error; err != nil {
		return nil, orNotFound(err)
	}
	return &project, nil
}

func (r *projectRepository) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&project).Error; err != nil {
		return nil, orNotFound(err)
	}
	return &project, nil
}

func (r *projectRepository) FindAllByUser(ctx context.Context, userID uuid.UUID, onlyPublic bool) ([]*model.Project, error) {
	var projects []*model.Project

	query := r.db.WithContext(ctx).
		Preload("Environment").
		Preload("Status").
		Preload("Database").
		Preload("ProjectType").
		Preload("Languages").
		Preload("Frameworks").
		Preload("Tags").
		Where("user_id = ?", userID)

	if onlyPublic {
		query = query.Where("is_public = ?", true)
	}

	// Pinned rows first in pin order, the rest newest first.
	if err := query.
		Order("pinned DESC").
		Order("pin_order ASC").
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *projectRepository) ReplaceLanguages(ctx context.Context, project *model.Project, languages []model.ProgrammingLanguage) error {
	return r.db.WithContext(ctx).Model(project).Association("Languages").Replace(languages)
}

func (r *projectRepository) ReplaceFrameworks(ctx context.Context, project *model.Project, frameworks []model.Framework) error {
	return r.db.WithContext(ctx).Model(project).Association("Frameworks").Replace(frameworks)
}

func (r *projectRepository) Delete(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, project.UserID); err != nil {
			return err
		}

		// Re-read under the lock; the caller's copy may hold a stale order.
		var current model.Project
		if err := tx.Select("pinned", "pin_order").
			Where("id = ?", project.ID).
			First(&current).Error; err != nil {
			return orNotFound(err)
		}

		if err := tx.Model(project).Association("Languages").Clear(); err != nil {
			return err
		}
		if err := tx.Model(project).Association("Frameworks").Clear(); err != nil {
			return err
		}
		if err := tx.Model(project).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Delete(project).Error; err != nil {
			return err
		}
		if current.Pinned {
			return closePinGap(tx, projectTable, project.UserID, current.PinOrder)
		}
		return nil
	})
}

func (r *projectRepository) Pin(ctx context.Context, id, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, ownerID); err != nil {
			return err
		}

		var project model.Project
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&project).Error; err != nil {
			return orNotFound(err)
		}
		if project.Pinned {
			return nil
		}

		next, err := nextPinOrder(tx, projectTable, ownerID)
		if err != nil {
			return err
		}

		return tx.Model(&project).
			UpdateColumns(map[string]any{"pinned": true, "pin_order": next}).Error
	})
}

func (r *projectRepository) Unpin(ctx context.Context, id, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, ownerID); err != nil {
			return err
		}

		var project model.Project
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&project).Error; err != nil {
			return orNotFound(err)
		}
		if !project.Pinned {
			return nil
		}

		released := project.PinOrder
		if err := tx.Model(&project).
			UpdateColumns(map[string]any{"pinned": false, "pin_order": 0}).Error; err != nil {
			return err
		}

		return closePinGap(tx, projectTable, ownerID, released)
	})
}

func (r *projectRepository) SetPinOrder(ctx context.Context, id, ownerID uuid.UUID, newOrder int) error {
	if newOrder <= 0 {
		return apperror.ErrInvalidOrder
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, ownerID); err != nil {
			return err
		}

		var project model.Project
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&project).Error; err != nil {
			return orNotFound(err)
		}
		if !project.Pinned {
			return apperror.ErrInvalidOrder
		}

		// Orders past the end of the pinned set collapse to the last slot.
		max, err := nextPinOrder(tx, projectTable, ownerID)
		if err != nil {
			return err
		}
		if newOrder >= max {
			newOrder = max - 1
		}

		oldOrder := project.PinOrder
		if newOrder == oldOrder {
			return nil
		}

		if err := shiftPinOrders(tx, projectTable, ownerID, id, oldOrder, newOrder); err != nil {
			return err
		}

		return tx.Model(&project).UpdateColumn("pin_order", newOrder).Error
	})
}
