package repositories

import (
	"context"

	"gorm.io/gorm"

	"wishlist/internal/apperror"
	"wishlist/internal/models"
)

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{db: db}
}

func (r *GORMItemRepository) List(ctx context.Context, ownerID uint, collectionID *uint) ([]models.Item, error) {
	db := r.db.WithContext(ctx)

	query := db.Where("owner_id = ?", ownerID)
	if collectionID != nil {
		if _, err := ownedCollection(db, ownerID, *collectionID); err != nil {
			return nil, err
		}
		query = query.Where("collection_id = ?", *collectionID)
	}

	var items []models.Item
	if err := query.Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, storageFailure(err, "list items", "owner_id", ownerID)
	}
	return items, nil
}

func (r *GORMItemRepository) Get(ctx context.Context, ownerID, id uint) (*models.Item, error) {
	return ownedItem(r.db.WithContext(ctx), ownerID, id)
}

func (r *GORMItemRepository) Create(ctx context.Context, item *models.Item) (*models.PriceHistoryEntry, error) {
	var entry *models.PriceHistoryEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if item.CollectionID == 0 {
			col, err := defaultCollection(tx, item.OwnerID)
			if err != nil {
				return err
			}
			item.CollectionID = col.ID
		} else if _, err := ownedCollection(tx, item.OwnerID, item.CollectionID); err != nil {
			return err
		}

		if err := tx.Create(item).Error; err != nil {
			return storageFailure(err, "create item", "owner_id", item.OwnerID)
		}

		entry = &models.PriceHistoryEntry{ItemID: item.ID, Price: item.InitialPrice}
		if err := tx.Create(entry).Error; err != nil {
			return storageFailure(err, "seed price history", "item_id", item.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *GORMItemRepository) Update(ctx context.Context, ownerID, id uint, changes ItemChanges) (*models.Item, *models.PriceHistoryEntry, error) {
	var (
		updated *models.Item
		entry   *models.PriceHistoryEntry
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := ownedItem(tx, ownerID, id)
		if err != nil {
			return err
		}

		values := map[string]any{}
		if changes.Title != nil {
			values["title"] = *changes.Title
		}
		if changes.ProductURL != nil {
			values["product_url"] = *changes.ProductURL
		}
		if changes.CollectionID != nil && *changes.CollectionID != item.CollectionID {
			if _, err := ownedCollection(tx, ownerID, *changes.CollectionID); err != nil {
				return err
			}
			values["collection_id"] = *changes.CollectionID
		}
		if changes.CurrentPrice != nil && !changes.CurrentPrice.Equal(item.CurrentPrice) {
			values["current_price"] = *changes.CurrentPrice
			entry = &models.PriceHistoryEntry{ItemID: item.ID, Price: *changes.CurrentPrice}
		}

		if len(values) > 0 {
			if err := tx.Model(item).Updates(values).Error; err != nil {
				return storageFailure(err, "update item", "item_id", id)
			}
		}
		if entry != nil {
			if err := tx.Create(entry).Error; err != nil {
				return storageFailure(err, "append price history", "item_id", id)
			}
		}

		updated, err = ownedItem(tx, ownerID, id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, entry, nil
}

// Delete removes the item; its price history cascades.
func (r *GORMItemRepository) Delete(ctx context.Context, ownerID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Item{})
	if res.Error != nil {
		return storageFailure(res.Error, "delete item", "item_id", id)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Wishlist item not found")
	}
	return nil
}

// defaultCollection returns the owner's default collection, creating
// "My Wishlist" when the owner has none yet.
func defaultCollection(tx *gorm.DB, ownerID uint) (*models.Collection, error) {
	if err := lockOwner(tx, ownerID); err != nil {
		return nil, err
	}

	var col models.Collection
	err := tx.Where("owner_id = ? AND is_default = ?", ownerID, true).First(&col).Error
	if err == nil {
		return &col, nil
	}
	if !isNotFound(err) {
		return nil, storageFailure(err, "load default collection", "owner_id", ownerID)
	}

	col = models.Collection{OwnerID: ownerID, Name: models.DefaultCollectionName, IsDefault: true}
	if err := tx.Create(&col).Error; err != nil {
		return nil, storageFailure(err, "create default collection", "owner_id", ownerID)
	}
	return &col, nil
}
