package models

import "time"

// PriceHistoryEntry is an immutable price observation. Rows are only ever
// inserted; they disappear with their item through the FK cascade.
type PriceHistoryEntry struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ItemID     uint      `json:"item_id" gorm:"not null;index:idx_price_history_item_time,priority:1"`
	Item       *Item     `json:"-" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	Price      Money     `json:"price" gorm:"type:decimal(10,2);not null"`
	RecordedAt time.Time `json:"recorded_at" gorm:"not null;autoCreateTime;index:idx_price_history_item_time,priority:2"`
}

// TableName implements schema.Tabler.
func (PriceHistoryEntry) TableName() string {
	return "price_history"
}
