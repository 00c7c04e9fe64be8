package services

import (
	"context"
	"strings"

	"wishlist/internal/apperror"
	"wishlist/internal/models"
	"wishlist/internal/repositories"
)

// ItemInput carries the fields of a new wishlist item.
type ItemInput struct {
	Title        string
	ProductURL   *string
	InitialPrice models.Money
	Currency     string
	// CollectionID nil files the item under the default collection.
	CollectionID *uint
}

// ItemService applies the item and price history rules on behalf of an
// authenticated owner.
type ItemService struct {
	items     repositories.ItemRepository
	history   repositories.PriceHistoryRepository
	publisher PriceEventPublisher
}

// NewItemService creates a new ItemService. publisher may be nil.
func NewItemService(items repositories.ItemRepository, history repositories.PriceHistoryRepository, publisher PriceEventPublisher) *ItemService {
	return &ItemService{
		items:     items,
		history:   history,
		publisher: publisher,
	}
}

// List returns the owner's items, newest first.
func (s *ItemService) List(ctx context.Context, owner *models.User, collectionID *uint) ([]models.Item, error) {
	return s.items.List(ctx, owner.ID, collectionID)
}

// Create adds an item. Its current price starts at the initial price and a
// first history entry is recorded with it.
func (s *ItemService) Create(ctx context.Context, owner *models.User, input ItemInput) (*models.Item, error) {
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = models.DefaultCurrency
	}

	title, err := cleanTitle(input.Title)
	if err != nil {
		return nil, err
	}

	item := &models.Item{
		OwnerID:      owner.ID,
		Title:        title,
		ProductURL:   input.ProductURL,
		InitialPrice: input.InitialPrice,
		CurrentPrice: input.InitialPrice,
		Currency:     currency,
	}
	if input.CollectionID != nil {
		item.CollectionID = *input.CollectionID
	}

	entry, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	publishPrice(ctx, s.publisher, owner.ID, item.Currency, SourceItemCreated, entry)
	return item, nil
}

// Get returns one item.
func (s *ItemService) Get(ctx context.Context, owner *models.User, id uint) (*models.Item, error) {
	return s.items.Get(ctx, owner.ID, id)
}

// Update applies a partial update; a changed current price is recorded in
// the item's history.
func (s *ItemService) Update(ctx context.Context, owner *models.User, id uint, changes repositories.ItemChanges) (*models.Item, error) {
	if changes.Title != nil {
		title, err := cleanTitle(*changes.Title)
		if err != nil {
			return nil, err
		}
		changes.Title = &title
	}
	item, entry, err := s.items.Update(ctx, owner.ID, id, changes)
	if err != nil {
		return nil, err
	}
	publishPrice(ctx, s.publisher, owner.ID, item.Currency, SourceItemUpdated, entry)
	return item, nil
}

// Delete removes an item and its history.
func (s *ItemService) Delete(ctx context.Context, owner *models.User, id uint) error {
	return s.items.Delete(ctx, owner.ID, id)
}

// PriceHistory returns the item's price observations, newest first.
func (s *ItemService) PriceHistory(ctx context.Context, owner *models.User, itemID uint) ([]models.PriceHistoryEntry, error) {
	return s.history.List(ctx, owner.ID, itemID)
}

// AddPrice records a manual price observation without changing the item's
// current price.
func (s *ItemService) AddPrice(ctx context.Context, owner *models.User, itemID uint, price models.Money) (*models.PriceHistoryEntry, error) {
	item, err := s.items.Get(ctx, owner.ID, itemID)
	if err != nil {
		return nil, err
	}
	entry, err := s.history.Add(ctx, owner.ID, itemID, price)
	if err != nil {
		return nil, err
	}
	publishPrice(ctx, s.publisher, owner.ID, item.Currency, SourceManual, entry)
	return entry, nil
}

func cleanTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperror.Validation("Validation failed", []FieldError{{
			Field:   "title",
			Message: "Title cannot be empty",
			Type:    "value_error",
		}})
	}
	return title, nil
}
