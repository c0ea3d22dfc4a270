package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics published by the fridge repositories.
const (
	TopicItemAdded     = "fridge.item.added"
	TopicItemRemoved   = "fridge.item.removed"
	TopicTypeForgotten = "fridge.type.forgotten"
)

// Topics lists every fridge topic, for subscribers that handle all of them.
var Topics = []string{TopicItemAdded, TopicItemRemoved, TopicTypeForgotten}

// ItemAddedEvent is published in the same transaction that stores a new item.
type ItemAddedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID     uuid.UUID `json:"item_id"`
	TypeID     int64     `json:"type_id"`
	FillFactor float64   `json:"fill_factor"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemRemovedEvent is published when an existing item is deleted.
type ItemRemovedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	TypeID     int64     `json:"type_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// TypeForgottenEvent is published when a type and all its items are deleted.
type TypeForgottenEvent struct {
	EventID      uuid.UUID `json:"event_id"`
	Version      int       `json:"version"`
	TypeID       int64     `json:"type_id"`
	ItemsRemoved int       `json:"items_removed"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// TypeRef is the part every fridge event carries. Consumers that only need
// the affected type decode into it regardless of topic.
type TypeRef struct {
	TypeID int64 `json:"type_id"`
}
