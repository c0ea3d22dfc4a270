package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/smartfridge/services/fridge/domain/models"
)

// ItemRepository is the Item Store: fridge items keyed by item id.
// The domain layer owns this interface; infrastructure implements it.
type ItemRepository interface {
	// Get returns ErrItemNotFound when no item has the id.
	Get(ctx context.Context, id uuid.UUID) (*models.FridgeItem, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Insert stores a new item. Returns ErrDuplicateItem when the id is taken.
	Insert(ctx context.Context, item *models.FridgeItem) error

	// Delete removes the item and returns it, or returns (nil, nil) when
	// nothing was stored under id.
	Delete(ctx context.Context, id uuid.UUID) (*models.FridgeItem, error)

	// DeleteByType removes every item of the type and reports how many went.
	DeleteByType(ctx context.Context, typeID int64) (int, error)

	FindByType(ctx context.Context, typeID int64) ([]*models.FridgeItem, error)
	FindAll(ctx context.Context) ([]*models.FridgeItem, error)
	Count(ctx context.Context) (int, error)
}

// TypeRepository is the Type Store: item types keyed by type id.
type TypeRepository interface {
	// Get returns ErrItemTypeNotFound when no type has the id.
	Get(ctx context.Context, id int64) (*models.ItemType, error)

	// Save creates the type or overwrites the name of an existing one.
	Save(ctx context.Context, t *models.ItemType) error

	// Delete removes the type and reports how many rows went (0 or 1).
	Delete(ctx context.Context, id int64) (int, error)

	Count(ctx context.Context) (int, error)
}

// Store groups both repositories behind one transaction boundary.
type Store interface {
	Items() ItemRepository
	Types() TypeRepository

	// WithTx runs fn against a Store bound to a single transaction. Every
	// write made through tx is committed when fn returns nil and discarded
	// when fn returns an error or panics.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}
