package models

import "time"

// DefaultCurrency is applied when an item is created without a currency.
const DefaultCurrency = "USD"

// Item is a tracked product. OwnerID duplicates the collection's owner so
// ownership checks never need a join; writes keep the two equal.
type Item struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	OwnerID      uint        `json:"-" gorm:"not null;index"`
	Owner        *User       `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	CollectionID uint        `json:"collection_id" gorm:"not null;index"`
	Collection   *Collection `json:"-" gorm:"foreignKey:CollectionID;constraint:OnDelete:CASCADE"`
	Title        string      `json:"title" gorm:"size:200;not null"`
	ProductURL   *string     `json:"product_url" gorm:"size:2048"`
	InitialPrice Money       `json:"initial_price" gorm:"type:decimal(10,2);not null"`
	CurrentPrice Money       `json:"current_price" gorm:"type:decimal(10,2);not null"`
	Currency     string      `json:"currency" gorm:"size:3;not null;default:USD"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
