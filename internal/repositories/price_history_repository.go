package repositories

import (
	"context"

	"wishlist/internal/models"
)

// PriceHistoryRepository reads and appends price observations of items the
// owner can see. Entries are never updated or deleted individually.
type PriceHistoryRepository interface {
	List(ctx context.Context, ownerID, itemID uint) ([]models.PriceHistoryEntry, error)
	Add(ctx context.Context, ownerID, itemID uint, price models.Money) (*models.PriceHistoryEntry, error)
}
