package repositories_test

import (
	"testing"

	"wishlist/internal/database"
	"wishlist/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, HashedPassword: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func ptr[T any](v T) *T {
	return &v
}
