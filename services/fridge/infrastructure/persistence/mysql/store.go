// Package mysql implements the fridge repositories on MySQL with plain
// database/sql queries. It publishes no domain events; the outbox lives in
// PostgreSQL.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/ghuser/smartfridge/pkg/database"
	"github.com/ghuser/smartfridge/services/fridge/domain"
	"github.com/ghuser/smartfridge/services/fridge/domain/models"
	"github.com/ghuser/smartfridge/services/fridge/domain/repositories"
)

const erDupEntry = 1062

// conn is satisfied by both *sql.DB and *sql.Tx.
type conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements repositories.Store against MySQL.
type Store struct {
	db *database.Database
	tx *sql.Tx // set only on the Store handed to WithTx callbacks
}

var _ repositories.Store = (*Store)(nil)

// NewStore returns a Store backed by the given pool.
func NewStore(database *database.Database) *Store {
	return &Store{db: database}
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
		return fn(&Store{db: s.db, tx: tx})
	})
}

func (s *Store) conn() conn {
	if s.tx != nil {
		return s.tx
	}
	return s.db.DB()
}

type itemRepo struct {
	s *Store
}

const itemColumns = `item_id, item_type_id, fill_factor`

func (r *itemRepo) Get(ctx context.Context, id uuid.UUID) (*models.FridgeItem, error) {
	item, err := scanItem(r.s.conn().QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE item_id = ?`, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

func (r *itemRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.s.conn().QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM items WHERE item_id = ?)`, id.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check item exists: %w", err)
	}
	return exists, nil
}

func (r *itemRepo) Insert(ctx context.Context, item *models.FridgeItem) error {
	_, err := r.s.conn().ExecContext(ctx,
		`INSERT INTO items (item_id, item_type_id, fill_factor) VALUES (?, ?, ?)`,
		item.ID.String(), item.TypeID, item.FillFactor,
	)
	if err != nil {
		var myErr *gomysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == erDupEntry {
			return domain.ErrDuplicateItem
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// Delete locks and reads the row before deleting it, since MySQL has no
// DELETE ... RETURNING.
func (r *itemRepo) Delete(ctx context.Context, id uuid.UUID) (*models.FridgeItem, error) {
	var removed *models.FridgeItem
	err := r.s.inTx(ctx, func(tx *Store) error {
		item, err := scanItem(tx.conn().QueryRowContext(ctx,
			`SELECT `+itemColumns+` FROM items WHERE item_id = ? FOR UPDATE`, id.String()))
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("lock item: %w", err)
		}
		if _, err := tx.conn().ExecContext(ctx, `DELETE FROM items WHERE item_id = ?`, id.String()); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		removed = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *itemRepo) DeleteByType(ctx context.Context, typeID int64) (int, error) {
	res, err := r.s.conn().ExecContext(ctx, `DELETE FROM items WHERE item_type_id = ?`, typeID)
	if err != nil {
		return 0, fmt.Errorf("delete items by type: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete items by type: %w", err)
	}
	return int(n), nil
}

func (r *itemRepo) FindByType(ctx context.Context, typeID int64) ([]*models.FridgeItem, error) {
	return r.query(ctx,
		`SELECT `+itemColumns+` FROM items WHERE item_type_id = ? ORDER BY added_at, item_id`, typeID)
}

func (r *itemRepo) FindAll(ctx context.Context) ([]*models.FridgeItem, error) {
	return r.query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY added_at, item_id`)
}

func (r *itemRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.s.conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

func (r *itemRepo) query(ctx context.Context, query string, args ...any) ([]*models.FridgeItem, error) {
	rows, err := r.s.conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []*models.FridgeItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

type typeRepo struct {
	s *Store
}

func (r *typeRepo) Get(ctx context.Context, id int64) (*models.ItemType, error) {
	var t models.ItemType
	err := r.s.conn().QueryRowContext(ctx,
		`SELECT item_type_id, name FROM item_types WHERE item_type_id = ?`, id,
	).Scan(&t.ID, &t.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrItemTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query item type: %w", err)
	}
	return &t, nil
}

func (r *typeRepo) Save(ctx context.Context, t *models.ItemType) error {
	_, err := r.s.conn().ExecContext(ctx,
		`INSERT INTO item_types (item_type_id, name) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE name = VALUES(name)`,
		t.ID, t.Name,
	)
	if err != nil {
		return fmt.Errorf("upsert item type: %w", err)
	}
	return nil
}

func (r *typeRepo) Delete(ctx context.Context, id int64) (int, error) {
	res, err := r.s.conn().ExecContext(ctx, `DELETE FROM item_types WHERE item_type_id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete item type: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete item type: %w", err)
	}
	return int(n), nil
}

func (r *typeRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.s.conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM item_types`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count item types: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (*models.FridgeItem, error) {
	var (
		item models.FridgeItem
		id   string
	)
	if err := row.Scan(&id, &item.TypeID, &item.FillFactor); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse item id %q: %w", id, err)
	}
	item.ID = parsed
	return &item, nil
}
