package repositories

import (
	"context"

	"wishlist/internal/models"
)

// CollectionChanges is a partial update; nil fields are left untouched.
type CollectionChanges struct {
	Name        *string
	Description *string
	Color       *string
	IsDefault   *bool
}

// CollectionRepository defines owner-scoped collection access. Every
// lookup filters on owner_id; a collection owned by someone else is
// reported as not found.
type CollectionRepository interface {
	List(ctx context.Context, ownerID uint) ([]models.Collection, error)
	Get(ctx context.Context, ownerID, id uint) (*models.Collection, error)
	Create(ctx context.Context, col *models.Collection) error
	Update(ctx context.Context, ownerID, id uint, changes CollectionChanges) (*models.Collection, error)
	SetDefault(ctx context.Context, ownerID, id uint) (*models.Collection, error)
	Delete(ctx context.Context, ownerID, id uint) error
}
