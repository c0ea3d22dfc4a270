package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/smartfridge/pkg/database"
	"github.com/ghuser/smartfridge/pkg/events"
	"github.com/ghuser/smartfridge/services/fridge/domain"
	domainevents "github.com/ghuser/smartfridge/services/fridge/domain/events"
	"github.com/ghuser/smartfridge/services/fridge/domain/models"
	"github.com/ghuser/smartfridge/services/fridge/domain/repositories"
	"github.com/ghuser/smartfridge/services/fridge/infrastructure/persistence/postgres/db"
)

const uniqueViolation = "23505"

// Store implements repositories.Store against PostgreSQL. Every write runs
// in a transaction; when a bus is configured the matching domain event is
// written to the outbox in that same transaction.
type Store struct {
	db  *database.Database
	bus *events.EventBus

	// Set only on the Store handed to WithTx callbacks.
	tx          *sql.Tx
	removedByTx map[int64]int
}

var _ repositories.Store = (*Store)(nil)

// NewStore returns a Store backed by the given pool. bus may be nil, in
// which case no events are published.
func NewStore(database *database.Database, bus *events.EventBus) *Store {
	return &Store{db: database, bus: bus}
}

func (s *Store) Items() repositories.ItemRepository { return &itemRepo{s: s} }
func (s *Store) Types() repositories.TypeRepository { return &typeRepo{s: s} }

// WithTx opens a transaction, or joins the current one when called on a
// transactional Store.
func (s *Store) WithTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	return s.inTx(ctx, func(tx *Store) error { return fn(tx) })
}

func (s *Store) inTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		return fn(&Store{db: s.db, bus: s.bus, tx: tx, removedByTx: map[int64]int{}})
	})
}

func (s *Store) queries() *db.Queries {
	if s.tx != nil {
		return db.New(s.tx)
	}
	return db.New(s.db.DB())
}

// publish writes an event to the outbox. Must be called on a transactional Store.
func (s *Store) publish(ctx context.Context, topic string, eventID uuid.UUID, payload any) error {
	if s.bus == nil {
		return nil
	}
	msg, err := events.NewMessage(eventID, 1, payload)
	if err != nil {
		return err
	}
	if err := s.bus.PublishTx(ctx, s.tx, topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

type itemRepo struct {
	s *Store
}

// Get returns ErrItemNotFound if the id is unknown.
func (r *itemRepo) Get(ctx context.Context, id uuid.UUID) (*models.FridgeItem, error) {
	row, err := r.s.queries().GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row), nil
}

func (r *itemRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := r.s.queries().ItemExists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check item exists: %w", err)
	}
	return exists, nil
}

// Insert stores the item and publishes ItemAddedEvent. A primary key
// violation is reported as ErrDuplicateItem.
func (r *itemRepo) Insert(ctx context.Context, item *models.FridgeItem) error {
	return r.s.inTx(ctx, func(tx *Store) error {
		if err := tx.queries().InsertItem(ctx, db.InsertItemParams{
			ItemID:     item.ID,
			ItemTypeID: item.TypeID,
			FillFactor: item.FillFactor,
		}); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return domain.ErrDuplicateItem
			}
			return fmt.Errorf("insert item: %w", err)
		}

		eventID := uuid.New()
		return tx.publish(ctx, domainevents.TopicItemAdded, eventID, domainevents.ItemAddedEvent{
			EventID:    eventID,
			Version:    1,
			ItemID:     item.ID,
			TypeID:     item.TypeID,
			FillFactor: item.FillFactor,
			OccurredAt: time.Now().UTC(),
		})
	})
}

// Delete removes the item and publishes ItemRemovedEvent. Returns (nil, nil)
// when the id is unknown.
func (r *itemRepo) Delete(ctx context.Context, id uuid.UUID) (*models.FridgeItem, error) {
	var removed *models.FridgeItem
	err := r.s.inTx(ctx, func(tx *Store) error {
		row, err := tx.queries().DeleteItem(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("delete item: %w", err)
		}
		removed = rowToItem(row)

		eventID := uuid.New()
		return tx.publish(ctx, domainevents.TopicItemRemoved, eventID, domainevents.ItemRemovedEvent{
			EventID:    eventID,
			Version:    1,
			ItemID:     removed.ID,
			TypeID:     removed.TypeID,
			OccurredAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// DeleteByType removes every item of the type. The count is remembered so
// that deleting the type in the same transaction can report it.
func (r *itemRepo) DeleteByType(ctx context.Context, typeID int64) (int, error) {
	var n int
	err := r.s.inTx(ctx, func(tx *Store) error {
		rows, err := tx.queries().DeleteItemsByType(ctx, typeID)
		if err != nil {
			return fmt.Errorf("delete items by type: %w", err)
		}
		n = int(rows)
		tx.removedByTx[typeID] += n
		return nil
	})
	return n, err
}

func (r *itemRepo) FindByType(ctx context.Context, typeID int64) ([]*models.FridgeItem, error) {
	rows, err := r.s.queries().FindItemsByType(ctx, typeID)
	if err != nil {
		return nil, fmt.Errorf("query items by type: %w", err)
	}
	return rowsToItems(rows), nil
}

func (r *itemRepo) FindAll(ctx context.Context) ([]*models.FridgeItem, error) {
	rows, err := r.s.queries().FindAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	return rowsToItems(rows), nil
}

func (r *itemRepo) Count(ctx context.Context) (int, error) {
	n, err := r.s.queries().CountItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return int(n), nil
}

type typeRepo struct {
	s *Store
}

// Get returns ErrItemTypeNotFound if the id is unknown.
func (r *typeRepo) Get(ctx context.Context, id int64) (*models.ItemType, error) {
	row, err := r.s.queries().GetItemType(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemTypeNotFound
		}
		return nil, fmt.Errorf("query item type: %w", err)
	}
	return models.NewItemType(row.ItemTypeID, row.Name), nil
}

func (r *typeRepo) Save(ctx context.Context, t *models.ItemType) error {
	if err := r.s.queries().UpsertItemType(ctx, db.UpsertItemTypeParams{
		ItemTypeID: t.ID,
		Name:       t.Name,
	}); err != nil {
		return fmt.Errorf("upsert item type: %w", err)
	}
	return nil
}

// Delete removes the type and publishes TypeForgottenEvent when a row went.
func (r *typeRepo) Delete(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.s.inTx(ctx, func(tx *Store) error {
		rows, err := tx.queries().DeleteItemType(ctx, id)
		if err != nil {
			return fmt.Errorf("delete item type: %w", err)
		}
		n = int(rows)
		if n == 0 {
			return nil
		}

		eventID := uuid.New()
		return tx.publish(ctx, domainevents.TopicTypeForgotten, eventID, domainevents.TypeForgottenEvent{
			EventID:      eventID,
			Version:      1,
			TypeID:       id,
			ItemsRemoved: tx.removedByTx[id],
			OccurredAt:   time.Now().UTC(),
		})
	})
	return n, err
}

func (r *typeRepo) Count(ctx context.Context) (int, error) {
	n, err := r.s.queries().CountItemTypes(ctx)
	if err != nil {
		return 0, fmt.Errorf("count item types: %w", err)
	}
	return int(n), nil
}

func rowToItem(row db.FridgeItem) *models.FridgeItem {
	return models.NewFridgeItem(row.ItemID, row.ItemTypeID, row.FillFactor)
}

func rowsToItems(rows []db.FridgeItem) []*models.FridgeItem {
	items := make([]*models.FridgeItem, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items
}
