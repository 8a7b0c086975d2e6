package repository

import (
	"errors"

	"github.com/devfolio/backend/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Helpers shared by the pinned collections (projects, user_certifications).
// Each table carries user_id, pinned and pin_order columns; the pinned rows
// of one user hold exactly the pin_order values {1..k}, and every write path
// below runs inside the caller's transaction to keep that set dense.

// lockOwner takes a row lock on the owner's user row. Every pin mutation
// reads the pinned set before rewriting it; funnelling them through the
// owner lock keeps two concurrent reorders from interleaving those steps.
// SQLite has no row locks, so the clause is a no-op under the test driver.
func lockOwner(tx *gorm.DB, ownerID any) error {
	var id string
	return tx.Table("users").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", ownerID).
		Select("id").
		Scan(&id).Error
}

func nextPinOrder(tx *gorm.DB, table string, ownerID any) (int, error) {
	var current int
	err := tx.Table(table).
		Where("user_id = ? AND pinned = ?", ownerID, true).
		Select("COALESCE(MAX(pin_order), 0)").
		Scan(&current).Error
	if err != nil {
		return 0, err
	}
	return current + 1, nil
}

// shiftPinOrders moves every pinned row except the target by one step so the
// target can take newOrder without duplicates or gaps.
func shiftPinOrders(tx *gorm.DB, table string, ownerID, itemID any, oldOrder, newOrder int) error {
	if newOrder < oldOrder {
		return tx.Table(table).
			Where("user_id = ? AND pinned = ? AND id <> ? AND pin_order >= ? AND pin_order < ?",
				ownerID, true, itemID, newOrder, oldOrder).
			UpdateColumn("pin_order", gorm.Expr("pin_order + 1")).Error
	}
	return tx.Table(table).
		Where("user_id = ? AND pinned = ? AND id <> ? AND pin_order > ? AND pin_order <= ?",
			ownerID, true, itemID, oldOrder, newOrder).
		UpdateColumn("pin_order", gorm.Expr("pin_order - 1")).Error
}

// closePinGap shifts every pinned row above a released slot down by one.
// Used after unpinning or deleting a pinned row.
func closePinGap(tx *gorm.DB, table string, ownerID any, releasedOrder int) error {
	return tx.Table(table).
		Where("user_id = ? AND pinned = ? AND pin_order > ?", ownerID, true, releasedOrder).
		UpdateColumn("pin_order", gorm.Expr("pin_order - 1")).Error
}

// orNotFound folds gorm's record-not-found into the app error so ownership
// misses and absent rows are indistinguishable to callers.
func orNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	return err
}
