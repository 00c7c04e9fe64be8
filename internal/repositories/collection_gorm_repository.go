package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"wishlist/internal/apperror"
	"wishlist/internal/database"
	"wishlist/internal/models"
)

// GORMCollectionRepository is a GORM implementation of CollectionRepository.
type GORMCollectionRepository struct {
	db *gorm.DB
}

// NewGORMCollectionRepository creates a new instance of GORMCollectionRepository.
func NewGORMCollectionRepository(db *gorm.DB) *GORMCollectionRepository {
	return &GORMCollectionRepository{db: db}
}

// List returns the owner's collections, default first, then newest first.
func (r *GORMCollectionRepository) List(ctx context.Context, ownerID uint) ([]models.Collection, error) {
	db := r.db.WithContext(ctx)

	var cols []models.Collection
	err := db.Where("owner_id = ?", ownerID).
		Order("is_default DESC").Order("created_at DESC").Order("id DESC").
		Find(&cols).Error
	if err != nil {
		return nil, storageFailure(err, "list collections", "owner_id", ownerID)
	}
	if err := fillItemCounts(db, ownerID, cols); err != nil {
		return nil, err
	}
	return cols, nil
}

// Get returns one collection with its item count.
func (r *GORMCollectionRepository) Get(ctx context.Context, ownerID, id uint) (*models.Collection, error) {
	return loadWithCount(r.db.WithContext(ctx), ownerID, id)
}

// Create inserts col for col.OwnerID. The owner's first collection always
// becomes the default; a new default clears the previous one.
func (r *GORMCollectionRepository) Create(ctx context.Context, col *models.Collection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, col.OwnerID); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.Collection{}).Where("owner_id = ?", col.OwnerID).Count(&existing).Error; err != nil {
			return storageFailure(err, "count collections", "owner_id", col.OwnerID)
		}
		if existing == 0 {
			col.IsDefault = true
		} else if col.IsDefault {
			if err := clearDefault(tx, col.OwnerID, 0); err != nil {
				return err
			}
		}

		if err := tx.Create(col).Error; err != nil {
			if database.IsDuplicateKey(err) {
				return duplicateName(col.Name)
			}
			return storageFailure(err, "create collection", "owner_id", col.OwnerID)
		}
		col.ItemCount = 0
		return nil
	})
}

// Update applies changes to the collection. Turning the default flag off
// on the current default is rejected: an owner with collections always has
// exactly one default.
func (r *GORMCollectionRepository) Update(ctx context.Context, ownerID, id uint, changes CollectionChanges) (*models.Collection, error) {
	var updated *models.Collection
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, ownerID); err != nil {
			return err
		}
		col, err := ownedCollection(tx, ownerID, id)
		if err != nil {
			return err
		}

		values := map[string]any{}
		if changes.Name != nil {
			values["name"] = *changes.Name
		}
		if changes.Description != nil {
			values["description"] = *changes.Description
		}
		if changes.Color != nil {
			values["color"] = *changes.Color
		}
		if changes.IsDefault != nil {
			switch {
			case *changes.IsDefault && !col.IsDefault:
				if err := clearDefault(tx, ownerID, id); err != nil {
					return err
				}
				values["is_default"] = true
			case !*changes.IsDefault && col.IsDefault:
				return apperror.Validation(
					"Cannot unset the default collection; mark another collection as default instead", nil)
			}
		}

		if len(values) > 0 {
			err := tx.Model(&models.Collection{}).Where("id = ? AND owner_id = ?", id, ownerID).Updates(values).Error
			if err != nil {
				if database.IsDuplicateKey(err) && changes.Name != nil {
					return duplicateName(*changes.Name)
				}
				return storageFailure(err, "update collection", "collection_id", id)
			}
		}

		updated, err = loadWithCount(tx, ownerID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetDefault makes id the owner's only default collection.
func (r *GORMCollectionRepository) SetDefault(ctx context.Context, ownerID, id uint) (*models.Collection, error) {
	var updated *models.Collection
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, ownerID); err != nil {
			return err
		}
		if _, err := ownedCollection(tx, ownerID, id); err != nil {
			return err
		}
		// Clear first: the partial unique index rejects two defaults even
		// inside a transaction.
		if err := clearDefault(tx, ownerID, id); err != nil {
			return err
		}
		err := tx.Model(&models.Collection{}).Where("id = ? AND owner_id = ?", id, ownerID).
			Update("is_default", true).Error
		if err != nil {
			return storageFailure(err, "set default collection", "collection_id", id)
		}

		updated, err = loadWithCount(tx, ownerID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a collection together with its items and their history.
// The owner's last collection cannot be deleted; when the default goes the
// newest remaining collection takes over.
func (r *GORMCollectionRepository) Delete(ctx context.Context, ownerID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, ownerID); err != nil {
			return err
		}
		col, err := ownedCollection(tx, ownerID, id)
		if err != nil {
			return err
		}

		var total int64
		if err := tx.Model(&models.Collection{}).Where("owner_id = ?", ownerID).Count(&total).Error; err != nil {
			return storageFailure(err, "count collections", "owner_id", ownerID)
		}
		if total <= 1 {
			return apperror.Conflict("Cannot delete the last remaining collection")
		}

		if err := tx.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Collection{}).Error; err != nil {
			return storageFailure(err, "delete collection", "collection_id", id)
		}

		if !col.IsDefault {
			return nil
		}
		var next models.Collection
		err = tx.Where("owner_id = ?", ownerID).Order("created_at DESC").Order("id DESC").First(&next).Error
		if err != nil {
			return storageFailure(err, "find replacement default", "owner_id", ownerID)
		}
		if err := tx.Model(&next).Update("is_default", true).Error; err != nil {
			return storageFailure(err, "promote default collection", "collection_id", next.ID)
		}
		return nil
	})
}

func duplicateName(name string) error {
	return apperror.Conflict(fmt.Sprintf("Collection with name '%s' already exists", name))
}

// clearDefault unsets the default flag on every owner collection except keep.
func clearDefault(tx *gorm.DB, ownerID, keep uint) error {
	err := tx.Model(&models.Collection{}).
		Where("owner_id = ? AND is_default = ? AND id <> ?", ownerID, true, keep).
		Update("is_default", false).Error
	if err != nil {
		return storageFailure(err, "clear default collection", "owner_id", ownerID)
	}
	return nil
}

func loadWithCount(db *gorm.DB, ownerID, id uint) (*models.Collection, error) {
	col, err := ownedCollection(db, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := db.Model(&models.Item{}).Where("collection_id = ?", id).Count(&col.ItemCount).Error; err != nil {
		return nil, storageFailure(err, "count items", "collection_id", id)
	}
	return col, nil
}

// fillItemCounts sets ItemCount on every collection with one grouped query.
func fillItemCounts(db *gorm.DB, ownerID uint, cols []models.Collection) error {
	if len(cols) == 0 {
		return nil
	}
	var rows []struct {
		CollectionID uint
		Count        int64
	}
	err := db.Model(&models.Item{}).
		Select("collection_id, COUNT(*) AS count").
		Where("owner_id = ?", ownerID).
		Group("collection_id").
		Scan(&rows).Error
	if err != nil {
		return storageFailure(err, "count items", "owner_id", ownerID)
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.CollectionID] = row.Count
	}
	for i := range cols {
		cols[i].ItemCount = counts[cols[i].ID]
	}
	return nil
}
