package repositories

import (
	"errors"

	"github.com/samber/oops"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wishlist/internal/apperror"
	"wishlist/internal/models"
)

// storageFailure wraps an unexpected database error. The result is an
// internal error: handlers log it and answer 500.
func storageFailure(err error, op string, kv ...any) error {
	return oops.Code("STORAGE_FAILURE").In("repositories").With(kv...).Wrapf(err, "%s", op)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// lockOwner takes a row lock on the owner so that writes touching the
// owner's default collection are serialised. SQLite ignores the FOR UPDATE
// clause; its single writer gives the same guarantee.
func lockOwner(tx *gorm.DB, ownerID uint) error {
	var user models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&user, ownerID).Error
	if isNotFound(err) {
		return apperror.NotFound("User not found")
	}
	if err != nil {
		return storageFailure(err, "lock owner", "owner_id", ownerID)
	}
	return nil
}

// ownedCollection loads a collection only if ownerID owns it.
func ownedCollection(tx *gorm.DB, ownerID, id uint) (*models.Collection, error) {
	var col models.Collection
	err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&col).Error
	if isNotFound(err) {
		return nil, apperror.NotFound("Collection not found")
	}
	if err != nil {
		return nil, storageFailure(err, "load collection", "collection_id", id, "owner_id", ownerID)
	}
	return &col, nil
}

// ownedItem loads an item only if ownerID owns it.
func ownedItem(tx *gorm.DB, ownerID, id uint) (*models.Item, error) {
	var item models.Item
	err := tx.Where("id = ? AND owner_id = ?", id, ownerID).First(&item).Error
	if isNotFound(err) {
		return nil, apperror.NotFound("Wishlist item not found")
	}
	if err != nil {
		return nil, storageFailure(err, "load item", "item_id", id, "owner_id", ownerID)
	}
	return &item, nil
}
