package models

import "time"

// User is the identity every collection, item and price entry hangs off.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Email          string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	HashedPassword string    `json:"-" gorm:"size:255;not null"` // never serialized
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
