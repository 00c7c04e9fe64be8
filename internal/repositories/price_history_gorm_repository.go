package repositories

import (
	"context"

	"gorm.io/gorm"

	"wishlist/internal/models"
)

// GORMPriceHistoryRepository is a GORM implementation of PriceHistoryRepository.
type GORMPriceHistoryRepository struct {
	db *gorm.DB
}

// NewGORMPriceHistoryRepository creates a new instance of GORMPriceHistoryRepository.
func NewGORMPriceHistoryRepository(db *gorm.DB) *GORMPriceHistoryRepository {
	return &GORMPriceHistoryRepository{db: db}
}

// List returns the item's history, newest first.
func (r *GORMPriceHistoryRepository) List(ctx context.Context, ownerID, itemID uint) ([]models.PriceHistoryEntry, error) {
	db := r.db.WithContext(ctx)
	if _, err := ownedItem(db, ownerID, itemID); err != nil {
		return nil, err
	}

	var entries []models.PriceHistoryEntry
	err := db.Where("item_id = ?", itemID).
		Order("recorded_at DESC").Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, storageFailure(err, "list price history", "item_id", itemID)
	}
	return entries, nil
}

// Add records a manual observation. It does not touch the item's current
// price.
func (r *GORMPriceHistoryRepository) Add(ctx context.Context, ownerID, itemID uint, price models.Money) (*models.PriceHistoryEntry, error) {
	var entry *models.PriceHistoryEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ownedItem(tx, ownerID, itemID); err != nil {
			return err
		}
		entry = &models.PriceHistoryEntry{ItemID: itemID, Price: price}
		if err := tx.Create(entry).Error; err != nil {
			return storageFailure(err, "add price history", "item_id", itemID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
