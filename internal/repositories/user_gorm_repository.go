package repositories

import (
	"context"

	"gorm.io/gorm"

	"wishlist/internal/apperror"
	"wishlist/internal/database"
	"wishlist/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{db: db}
}

// Create inserts user. A taken email surfaces as a ConflictError from the
// unique index rather than from a lookup beforehand.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsDuplicateKey(err) {
			return apperror.Conflict("Email already registered")
		}
		return storageFailure(err, "create user")
	}
	return nil
}

// GetByEmail retrieves a user by exact email.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, storageFailure(err, "get user by email")
	}
	return &user, nil
}

// GetByID retrieves a user by primary key.
func (r *GORMUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if isNotFound(err) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, storageFailure(err, "get user by id", "user_id", id)
	}
	return &user, nil
}

// Delete removes the user; collections, items and price history go with it
// through the foreign key cascades.
func (r *GORMUserRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return storageFailure(res.Error, "delete user", "user_id", id)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("User not found")
	}
	return nil
}
