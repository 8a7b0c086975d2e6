package repository

import (
	"context"

	"github.com/devfolio/backend/internal/model"
	"github.com/devfolio/backend/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const certificationTable = "user_certifications"

type CertificationRepository interface {
	Create(ctx context.Context, cert *model.UserCertification) error
	FindOwned(ctx context.Context, id uint, ownerID uuid.UUID) (*model.UserCertification, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*model.UserCertification, error)
	Update(ctx context.Context, cert *model.UserCertification) error
	Delete(ctx context.Context, cert *model.UserCertification) error
	Pin(ctx context.Context, id uint, ownerID uuid.UUID) error
	Unpin(ctx context.Context, id uint, ownerID uuid.UUID) error
	SetPinOrder(ctx context.Context, id uint, ownerID uuid.UUID, newOrder int) error
}

type certificationRepository struct {
	db *gorm.DB
}

func NewCertificationRepository(db *gorm.DB) CertificationRepository {
	return &certificationRepository{db: db}
}

func (r *certificationRepository) Create(ctx context.Context, cert *model.UserCertification) error {
	return r.db.WithContext(ctx).Create(cert).Error
}

func (r *certificationRepository) FindOwned(ctx context.Context, id uint, ownerID uuid.UUID) (*model.UserCertification, error) {
	var cert model.UserCertification
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&cert).Error; err != nil {
		return nil, orNotFound(err)
	}
	return &cert, nil
}

func (r *certificationRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*model.UserCertification, error) {
	var certs []*model.UserCertification
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sort_order ASC").
		Order("created_at DESC").
		Find(&certs).Error; err != nil {
		return nil, err
	}
	return certs, nil
}

func (r *certificationRepository) Update(ctx context.Context, cert *model.UserCertification) error {
	return r.db.WithContext(ctx).Save(cert).Error
}

func (r *certificationRepository) Delete(ctx context.Context, cert *model.UserCertification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, cert.UserID); err != nil {
			return err
		}

		// Re-read under the lock; the caller's copy may hold a stale order.
		var current model.UserCertification
		if err := tx.Select("pinned", "pin_order").
			Where("id = ?", cert.ID).
			First(&current).Error; err != nil {
			return orNotFound(err)
		}

		if err := tx.Delete(cert).Error; err != nil {
			return err
		}
		if current.Pinned {
			return closePinGap(tx, certificationTable, cert.UserID, current.PinOrder)
		}
		return nil
	})
}

func (r *certificationRepository) Pin(ctx context.Context, id uint, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, ownerID); err != nil {
			return err
		}

		var cert model.UserCertification
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&cert).Error; err != nil {
			return orNotFound(err)
		}
		if cert.Pinned {
			return nil
		}

		next, err := nextPinOrder(tx, certificationTable, ownerID)
		if err != nil {
			return err
		}

		return tx.Model(&cert).
			UpdateColumns(map[string]any{"pinned": true, "pin_order": next}).Error
	})
}

func (r *certificationRepository) Unpin(ctx context.Context, id uint, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, ownerID); err != nil {
			return err
		}

		var cert model.UserCertification
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&cert).Error; err != nil {
			return orNotFound(err)
		}
		if !cert.Pinned {
			return nil
		}

		released := cert.PinOrder
		if err := tx.Model(&cert).
			UpdateColumns(map[string]any{"pinned": false, "pin_order": 0}).Error; err != nil {
			return err
		}

		return closePinGap(tx, certificationTable, ownerID, released)
	})
}

func (r *certificationRepository) SetPinOrder(ctx context.Context, id uint, ownerID uuid.UUID, newOrder int) error {
	if newOrder <= 0 {
		return apperror.ErrInvalidOrder
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, ownerID); err != nil {
			return err
		}

		var cert model.UserCertification
		if err := tx.Where("id = ? AND user_id = ?", id, ownerID).First(&cert).Error; err != nil {
			return orNotFound(err)
		}
		if !cert.Pinned {
			return apperror.ErrInvalidOrder
		}

		max, err := nextPinOrder(tx, certificationTable, ownerID)
		if err != nil {
			return err
		}
		if newOrder >= max {
			newOrder = max - 1
		}

		oldOrder := cert.PinOrder
		if newOrder == oldOrder {
			return nil
		}

		if err := shiftPinOrders(tx, certificationTable, ownerID, id, oldOrder, newOrder); err != nil {
			return err
		}

		return tx.Model(&cert).UpdateColumn("pin_order", newOrder).Error
	})
}
