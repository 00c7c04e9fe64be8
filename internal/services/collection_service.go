package services

import (
	"context"
	"strings"

	"wishlist/internal/apperror"
	"wishlist/internal/models"
	"wishlist/internal/repositories"
)

// CollectionInput carries the fields of a new collection.
type CollectionInput struct {
	Name        string
	Description *string
	Color       *string
	IsDefault   bool
}

// CollectionService applies the collection rules on behalf of an
// authenticated owner.
type CollectionService struct {
	collections repositories.CollectionRepository
	items       repositories.ItemRepository
}

// NewCollectionService creates a new CollectionService.
func NewCollectionService(collections repositories.CollectionRepository, items repositories.ItemRepository) *CollectionService {
	return &CollectionService{
		collections: collections,
		items:       items,
	}
}

// List returns the owner's collections, default first.
func (s *CollectionService) List(ctx context.Context, owner *models.User) ([]models.Collection, error) {
	return s.collections.List(ctx, owner.ID)
}

// Create adds a collection. The owner's first collection becomes the
// default regardless of input.IsDefault.
func (s *CollectionService) Create(ctx context.Context, owner *models.User, input CollectionInput) (*models.Collection, error) {
	name, err := cleanName(input.Name)
	if err != nil {
		return nil, err
	}
	col := &models.Collection{
		OwnerID:     owner.ID,
		Name:        name,
		Description: input.Description,
		Color:       input.Color,
		IsDefault:   input.IsDefault,
	}
	if err := s.collections.Create(ctx, col); err != nil {
		return nil, err
	}
	return col, nil
}

// Get returns one collection with its items, newest first.
func (s *CollectionService) Get(ctx context.Context, owner *models.User, id uint) (*models.Collection, error) {
	col, err := s.collections.Get(ctx, owner.ID, id)
	if err != nil {
		return nil, err
	}
	items, err := s.items.List(ctx, owner.ID, &col.ID)
	if err != nil {
		return nil, err
	}
	col.Items = items
	col.ItemCount = int64(len(items))
	return col, nil
}

// Update applies a partial update.
func (s *CollectionService) Update(ctx context.Context, owner *models.User, id uint, changes repositories.CollectionChanges) (*models.Collection, error) {
	if changes.Name != nil {
		name, err := cleanName(*changes.Name)
		if err != nil {
			return nil, err
		}
		changes.Name = &name
	}
	return s.collections.Update(ctx, owner.ID, id, changes)
}

// SetDefault makes id the owner's default collection.
func (s *CollectionService) SetDefault(ctx context.Context, owner *models.User, id uint) (*models.Collection, error) {
	return s.collections.SetDefault(ctx, owner.ID, id)
}

// Delete removes a collection and its items.
func (s *CollectionService) Delete(ctx context.Context, owner *models.User, id uint) error {
	return s.collections.Delete(ctx, owner.ID, id)
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.Validation("Validation failed", []FieldError{{
			Field:   "name",
			Message: "Collection name cannot be empty",
			Type:    "value_error",
		}})
	}
	return name, nil
}
