package repositories_test

import (
	"context"
	"testing"

	"wishlist/internal/apperror"
	"wishlist/internal/models"
	"wishlist/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionRepository_FirstCollectionBecomesDefault(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMCollectionRepository(db)
	owner := seedUser(t, db, "a@example.com")

	first := &models.Collection{OwnerID: owner.ID, Name: "Tech"}
	require.NoError(t, repo.Create(ctx, first))
	assert.True(t, first.IsDefault)

	second := &models.Collection{OwnerID: owner.ID, Name: "Books"}
	require.NoError(t, repo.Create(ctx, second))
	assert.False(t, second.IsDefault)

	third := &models.Collection{OwnerID: owner.ID, Name: "Games", IsDefault: true}
	require.NoError(t, repo.Create(ctx, third))

	cols, err := repo.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, cols, 3)
	assert.Equal(t, third.ID, cols[0].ID, "default first")
	assert.Equal(t, second.ID, cols[1].ID, "then newest first")
	assert.Equal(t, first.ID, cols[2].ID)
	assert.Equal(t, 1, countDefaults(cols))
}

func TestCollectionRepository_DuplicateName(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMCollectionRepository(db)
	alice := seedUser(t, db, "a@example.com")
	bob := seedUser(t, db, "b@example.com")

	require.NoError(t, repo.Create(ctx, &models.Collection{OwnerID: alice.ID, Name: "Tech"}))
	err := repo.Create(ctx, &models.Collection{OwnerID: alice.ID, Name: "Tech"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.EqualError(t, err, "Collection with name 'Tech' already exists")

	require.NoError(t, repo.Create(ctx, &models.Collection{OwnerID: bob.ID, Name: "Tech"}),
		"names are unique per owner only")

	books := &models.Collection{OwnerID: alice.ID, Name: "Books"}
	require.NoError(t, repo.Create(ctx, books))
	_, err = repo.Update(ctx, alice.ID, books.ID, repositories.CollectionChanges{Name: ptr("Tech")})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestCollectionRepository_Update(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMCollectionRepository(db)
	owner := seedUser(t, db, "a@example.com")

	tech := &models.Collection{OwnerID: owner.ID, Name: "Tech"}
	require.NoError(t, repo.Create(ctx, tech))
	books := &models.Collection{OwnerID: owner.ID, Name: "Books"}
	require.NoError(t, repo.Create(ctx, books))

	updated, err := repo.Update(ctx, owner.ID, books.ID, repositories.CollectionChanges{
		Description: ptr("Paper"),
		Color:       ptr("#FF00AA"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Books", updated.Name)
	assert.Equal(t, "Paper", *updated.Description)
	assert.Equal(t, "#FF00AA", *updated.Color)

	updated, err = repo.Update(ctx, owner.ID, books.ID, repositories.CollectionChanges{IsDefault: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)

	reloaded, err := repo.Get(ctx, owner.ID, tech.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsDefault)

	_, err = repo.Update(ctx, owner.ID, books.ID, repositories.CollectionChanges{IsDefault: ptr(false)})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestCollectionRepository_SetDefault(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMCollectionRepository(db)
	owner := seedUser(t, db, "a@example.com")

	a := &models.Collection{OwnerID: owner.ID, Name: "A"}
	b := &models.Collection{OwnerID: owner.ID, Name: "B"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	col, err := repo.SetDefault(ctx, owner.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, col.IsDefault)

	// Idempotent.
	_, err = repo.SetDefault(ctx, owner.ID, b.ID)
	require.NoError(t, err)

	cols, err := repo.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, countDefaults(cols))
	assert.Equal(t, b.ID, cols[0].ID)
}

func TestCollectionRepository_CrossOwnerIsNotFound(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMCollectionRepository(db)
	alice := seedUser(t, db, "a@example.com")
	bob := seedUser(t, db, "b@example.com")

	col := &models.Collection{OwnerID: alice.ID, Name: "Private"}
	require.NoError(t, repo.Create(ctx, col))
	require.NoError(t, repo.Create(ctx, &models.Collection{OwnerID: bob.ID, Name: "Mine"}))

	_, err := repo.Get(ctx, bob.ID, col.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = repo.Update(ctx, bob.ID, col.ID, repositories.CollectionChanges{Name: ptr("Stolen")})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = repo.SetDefault(ctx, bob.ID, col.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, bob.ID, col.ID), apperror.ErrNotFound)

	mine, err := repo.Get(ctx, alice.ID, col.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", mine.Name)
}

func TestCollectionRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMCollectionRepository(db)
	items := repositories.NewGORMItemRepository(db)
	owner := seedUser(t, db, "a@example.com")

	only := &models.Collection{OwnerID: owner.ID, Name: "Only"}
	require.NoError(t, repo.Create(ctx, only))
	assert.ErrorIs(t, repo.Delete(ctx, owner.ID, only.ID), apperror.ErrConflict)

	older := &models.Collection{OwnerID: owner.ID, Name: "Older"}
	require.NoError(t, repo.Create(ctx, older))
	newer := &models.Collection{OwnerID: owner.ID, Name: "Newer"}
	require.NoError(t, repo.Create(ctx, newer))

	item := &models.Item{
		OwnerID: owner.ID, CollectionID: only.ID, Title: "Laptop", Currency: "USD",
		InitialPrice: models.MustMoney("10.00"), CurrentPrice: models.MustMoney("10.00"),
	}
	_, err := items.Create(ctx, item)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, owner.ID, only.ID))

	_, err = items.Get(ctx, owner.ID, item.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound, "items cascade with their collection")

	var history int64
	require.NoError(t, db.Model(&models.PriceHistoryEntry{}).Where("item_id = ?", item.ID).Count(&history).Error)
	assert.Zero(t, history)

	promoted, err := repo.Get(ctx, owner.ID, newer.ID)
	require.NoError(t, err)
	assert.True(t, promoted.IsDefault, "newest remaining collection becomes default")
}

func TestCollectionRepository_ItemCounts(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repositories.NewGORMCollectionRepository(db)
	items := repositories.NewGORMItemRepository(db)
	owner := seedUser(t, db, "a@example.com")

	col := &models.Collection{OwnerID: owner.ID, Name: "Tech"}
	require.NoError(t, repo.Create(ctx, col))
	for _, title := range []string{"Laptop", "Mouse"} {
		_, err := items.Create(ctx, &models.Item{
			OwnerID: owner.ID, CollectionID: col.ID, Title: title, Currency: "USD",
			InitialPrice: models.MustMoney("5.00"), CurrentPrice: models.MustMoney("5.00"),
		})
		require.NoError(t, err)
	}

	got, err := repo.Get(ctx, owner.ID, col.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.ItemCount)

	cols, err := repo.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, cols[0].ItemCount)
}

func countDefaults(cols []models.Collection) int {
	n := 0
	for _, col := range cols {
		if col.IsDefault {
			n++
		}
	}
	return n
}
