package models

import "time"

// DefaultCollectionName is used when an item is added before the owner has
// created any collection.
const DefaultCollectionName = "My Wishlist"

// Collection is a named group of items belonging to exactly one user.
// At most one collection per owner has IsDefault set; a partial unique
// index enforces it in the schema.
type Collection struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OwnerID     uint      `json:"-" gorm:"not null;index;uniqueIndex:idx_collections_owner_name,priority:1"`
	Owner       *User     `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Name        string    `json:"name" gorm:"size:100;not null;uniqueIndex:idx_collections_owner_name,priority:2"`
	Description *string   `json:"description" gorm:"type:text"`
	Color       *string   `json:"color" gorm:"size:7"`
	IsDefault   bool      `json:"is_default" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	ItemCount int64  `json:"item_count" gorm:"-"`
	Items     []Item `json:"items,omitempty" gorm:"-"`
}
