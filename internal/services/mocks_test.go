package services_test

import (
	"context"

	"wishlist/internal/models"
	"wishlist/internal/repositories"
	"wishlist/pkg/rabbitmq"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCollectionRepository is a mock implementation of repositories.CollectionRepository
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) List(ctx context.Context, ownerID uint) ([]models.Collection, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Collection), args.Error(1)
}

func (m *MockCollectionRepository) Get(ctx context.Context, ownerID, id uint) (*models.Collection, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionRepository) Create(ctx context.Context, col *models.Collection) error {
	args := m.Called(ctx, col)
	return args.Error(0)
}

func (m *MockCollectionRepository) Update(ctx context.Context, ownerID, id uint, changes repositories.CollectionChanges) (*models.Collection, error) {
	args := m.Called(ctx, ownerID, id, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionRepository) SetDefault(ctx context.Context, ownerID, id uint) (*models.Collection, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionRepository) Delete(ctx context.Context, ownerID, id uint) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

// MockItemRepository is a mock implementation of repositories.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) List(ctx context.Context, ownerID uint, collectionID *uint) ([]models.Item, error) {
	args := m.Called(ctx, ownerID, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) Get(ctx context.Context, ownerID, id uint) (*models.Item, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Create(ctx context.Context, item *models.Item) (*models.PriceHistoryEntry, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PriceHistoryEntry), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, ownerID, id uint, changes repositories.ItemChanges) (*models.Item, *models.PriceHistoryEntry, error) {
	args := m.Called(ctx, ownerID, id, changes)
	var item *models.Item
	if v := args.Get(0); v != nil {
		item = v.(*models.Item)
	}
	var entry *models.PriceHistoryEntry
	if v := args.Get(1); v != nil {
		entry = v.(*models.PriceHistoryEntry)
	}
	return item, entry, args.Error(2)
}

func (m *MockItemRepository) Delete(ctx context.Context, ownerID, id uint) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

// MockPriceHistoryRepository is a mock implementation of repositories.PriceHistoryRepository
type MockPriceHistoryRepository struct {
	mock.Mock
}

func (m *MockPriceHistoryRepository) List(ctx context.Context, ownerID, itemID uint) ([]models.PriceHistoryEntry, error) {
	args := m.Called(ctx, ownerID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PriceHistoryEntry), args.Error(1)
}

func (m *MockPriceHistoryRepository) Add(ctx context.Context, ownerID, itemID uint, price models.Money) (*models.PriceHistoryEntry, error) {
	args := m.Called(ctx, ownerID, itemID, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PriceHistoryEntry), args.Error(1)
}

// MockPublisher records price events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishPriceRecorded(ctx context.Context, event rabbitmq.PriceRecorded) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
