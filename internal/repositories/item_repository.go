package repositories

import (
	"context"

	"wishlist/internal/models"
)

// ItemChanges is a partial item update; nil fields are left untouched.
// The initial price is immutable and therefore absent.
type ItemChanges struct {
	Title        *string
	ProductURL   *string
	CurrentPrice *models.Money
	CollectionID *uint
}

// ItemRepository defines owner-scoped item access.
type ItemRepository interface {
	// List returns the owner's items, newest first, optionally restricted
	// to one of the owner's collections.
	List(ctx context.Context, ownerID uint, collectionID *uint) ([]models.Item, error)
	Get(ctx context.Context, ownerID, id uint) (*models.Item, error)
	// Create inserts item and its first price history entry. A zero
	// CollectionID files the item under the owner's default collection.
	Create(ctx context.Context, item *models.Item) (*models.PriceHistoryEntry, error)
	// Update applies changes; the returned entry is non-nil when the
	// current price changed and a history entry was appended.
	Update(ctx context.Context, ownerID, id uint, changes ItemChanges) (*models.Item, *models.PriceHistoryEntry, error)
	Delete(ctx context.Context, ownerID, id uint) error
}
