package models

import "github.com/google/uuid"

// FridgeItem is a single container in the fridge.
// FillFactor is its occupancy in [0, 1].
type FridgeItem struct {
	ID         uuid.UUID
	TypeID     int64
	FillFactor float64
}

// NewFridgeItem constructs a FridgeItem of the given type.
func NewFridgeItem(id uuid.UUID, typeID int64, fillFactor float64) *FridgeItem {
	return &FridgeItem{ID: id, TypeID: typeID, FillFactor: fillFactor}
}

// IsEmpty reports whether nothing is left in the container.
func (i FridgeItem) IsEmpty() bool { return i.FillFactor == 0 }

// AtOrBelow reports whether the item is filled no more than threshold.
func (i FridgeItem) AtOrBelow(threshold float64) bool { return i.FillFactor <= threshold }

// Key is the identity of the item.
func (i FridgeItem) Key() uuid.UUID { return i.ID }

// Equal reports whether both values identify the same item.
func (i FridgeItem) Equal(o FridgeItem) bool { return i.ID == o.ID }

// FillFactorResult is one matching item in a below-threshold query.
type FillFactorResult struct {
	TypeID     int64   `json:"type_id"`
	FillFactor float64 `json:"fill_factor"`
}

// Bucket groups the results of one item type.
type Bucket []FillFactorResult

// TypeID returns the type shared by every result, or 0 for an empty bucket.
func (b Bucket) TypeID() int64 {
	if len(b) == 0 {
		return 0
	}
	return b[0].TypeID
}
