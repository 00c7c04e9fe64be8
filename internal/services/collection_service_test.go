package services_test

import (
	"context"
	"testing"

	"wishlist/internal/apperror"
	"wishlist/internal/models"
	"wishlist/internal/repositories"
	"wishlist/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCollectionService_Create(t *testing.T) {
	ctx := context.Background()
	owner := &models.User{ID: 3}
	cols := new(MockCollectionRepository)
	svc := services.NewCollectionService(cols, new(MockItemRepository))

	cols.On("Create", ctx, mock.MatchedBy(func(c *models.Collection) bool {
		return c.OwnerID == 3 && c.Name == "Tech" && c.IsDefault
	})).Return(nil).Once()

	col, err := svc.Create(ctx, owner, services.CollectionInput{Name: "  Tech  ", IsDefault: true})
	require.NoError(t, err)
	assert.Equal(t, "Tech", col.Name)
	cols.AssertExpectations(t)

	_, err = svc.Create(ctx, owner, services.CollectionInput{Name: "   "})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	cols.AssertNumberOfCalls(t, "Create", 1)
}

func TestCollectionService_GetIncludesItems(t *testing.T) {
	ctx := context.Background()
	owner := &models.User{ID: 3}
	cols := new(MockCollectionRepository)
	items := new(MockItemRepository)
	svc := services.NewCollectionService(cols, items)

	col := &models.Collection{ID: 10, OwnerID: 3, Name: "Tech"}
	cols.On("Get", ctx, uint(3), uint(10)).Return(col, nil).Once()
	items.On("List", ctx, uint(3), mock.MatchedBy(func(id *uint) bool { return id != nil && *id == 10 })).
		Return([]models.Item{{ID: 2}, {ID: 1}}, nil).Once()

	got, err := svc.Get(ctx, owner, 10)
	require.NoError(t, err)
	assert.Len(t, got.Items, 2)
	assert.EqualValues(t, 2, got.ItemCount)

	cols.On("Get", ctx, uint(3), uint(99)).Return(nil, apperror.NotFound("Collection not found")).Once()
	_, err = svc.Get(ctx, owner, 99)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	cols.AssertExpectations(t)
	items.AssertExpectations(t)
}

func TestCollectionService_UpdateTrimsName(t *testing.T) {
	ctx := context.Background()
	owner := &models.User{ID: 3}
	cols := new(MockCollectionRepository)
	svc := services.NewCollectionService(cols, new(MockItemRepository))

	name := " Books "
	cols.On("Update", ctx, uint(3), uint(10), mock.MatchedBy(func(c repositories.CollectionChanges) bool {
		return c.Name != nil && *c.Name == "Books"
	})).Return(&models.Collection{ID: 10, Name: "Books"}, nil).Once()

	col, err := svc.Update(ctx, owner, 10, repositories.CollectionChanges{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Books", col.Name)

	blank := ""
	_, err = svc.Update(ctx, owner, 10, repositories.CollectionChanges{Name: &blank})
	assert.ErrorIs(t, err, apperror.ErrValidation)
	cols.AssertExpectations(t)
}

func TestCollectionService_PassThrough(t *testing.T) {
	ctx := context.Background()
	owner := &models.User{ID: 3}
	cols := new(MockCollectionRepository)
	svc := services.NewCollectionService(cols, new(MockItemRepository))

	cols.On("List", ctx, uint(3)).Return([]models.Collection{{ID: 1, IsDefault: true}}, nil).Once()
	cols.On("SetDefault", ctx, uint(3), uint(1)).Return(&models.Collection{ID: 1, IsDefault: true}, nil).Once()
	cols.On("Delete", ctx, uint(3), uint(1)).Return(apperror.Conflict("Cannot delete the last remaining collection")).Once()

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	col, err := svc.SetDefault(ctx, owner, 1)
	require.NoError(t, err)
	assert.True(t, col.IsDefault)

	assert.ErrorIs(t, svc.Delete(ctx, owner, 1), apperror.ErrConflict)
	cols.AssertExpectations(t)
}
