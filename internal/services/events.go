package services

import (
	"context"
	"log/slog"

	"wishlist/internal/models"
	"wishlist/pkg/rabbitmq"
)

// Price event sources.
const (
	SourceItemCreated = "item_created"
	SourceItemUpdated = "item_updated"
	SourceManual      = "manual"
)

// PriceEventPublisher is notified after a price history entry commits.
// *rabbitmq.Client implements it.
type PriceEventPublisher interface {
	PublishPriceRecorded(ctx context.Context, event rabbitmq.PriceRecorded) error
}

// publishPrice never fails the caller: the entry is already committed.
func publishPrice(ctx context.Context, pub PriceEventPublisher, ownerID uint, currency, source string, entry *models.PriceHistoryEntry) {
	if pub == nil || entry == nil {
		return
	}
	event := rabbitmq.PriceRecorded{
		Event:      rabbitmq.EventPriceRecorded,
		EntryID:    entry.ID,
		ItemID:     entry.ItemID,
		OwnerID:    ownerID,
		Price:      entry.Price.String(),
		Currency:   currency,
		Source:     source,
		RecordedAt: entry.RecordedAt,
	}
	if err := pub.PublishPriceRecorded(ctx, event); err != nil {
		slog.Warn("failed to publish price event", "item_id", entry.ItemID, "entry_id", entry.ID, "error", err)
	}
}
