// Package memory is an in-process implementation of the fridge repositories.
// It backs tests and STORAGE_DRIVER=memory; contents are lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/ghuser/smartfridge/services/fridge/domain"
	"github.com/ghuser/smartfridge/services/fridge/domain/models"
	"github.com/ghuser/smartfridge/services/fridge/domain/repositories"
)

type storedItem struct {
	item models.FridgeItem
	seq  uint64 // insertion order, used for deterministic listing
}

type state struct {
	items   map[uuid.UUID]storedItem
	types   map[int64]models.ItemType
	nextSeq uint64
}

func newState() *state {
	return &state{
		items: map[uuid.UUID]storedItem{},
		types: map[int64]models.ItemType{},
	}
}

func (s *state) clone() *state {
	cp := &state{
		items:   make(map[uuid.UUID]storedItem, len(s.items)),
		types:   make(map[int64]models.ItemType, len(s.types)),
		nextSeq: s.nextSeq,
	}
	for k, v := range s.items {
		cp.items[k] = v
	}
	for k, v := range s.types {
		cp.types[k] = v
	}
	return cp
}

// ordered returns the stored items matching keep in insertion order.
func (s *state) ordered(keep func(models.FridgeItem) bool) []*models.FridgeItem {
	rows := make([]storedItem, 0, len(s.items))
	for _, r := range s.items {
		if keep == nil || keep(r.item) {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	out := make([]*models.FridgeItem, len(rows))
	for i, r := range rows {
		item := r.item
		out[i] = &item
	}
	return out
}

// accessor hides whether repository calls run under the store lock or
// inside a transaction that already holds it.
type accessor interface {
	read(fn func(st *state))
	write(fn func(st *state))
}

// Store implements repositories.Store over two maps guarded by a RWMutex.
type Store struct {
	mu sync.RWMutex
	st *state
}

var _ repositories.Store = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{st: newState()}
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.st)
}

func (s *Store) write(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.st)
}

func (s *Store) Items() repositories.ItemRepository { return &itemRepo{acc: s} }
func (s *Store) Types() repositories.TypeRepository { return &typeRepo{acc: s} }

// WithTx serialises transactions on the store lock. fn works on a clone of
// the current state which replaces it only when fn returns nil, so an error
// or panic leaves the store untouched.
func (s *Store) WithTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txStore{st: s.st.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	s.st = tx.st
	return nil
}

// txStore is the Store handed to WithTx callbacks.
type txStore struct {
	st *state
}

func (t *txStore) read(fn func(st *state))  { fn(t.st) }
func (t *txStore) write(fn func(st *state)) { fn(t.st) }

func (t *txStore) Items() repositories.ItemRepository { return &itemRepo{acc: t} }
func (t *txStore) Types() repositories.TypeRepository { return &typeRepo{acc: t} }

// WithTx joins the surrounding transaction.
func (t *txStore) WithTx(_ context.Context, fn func(tx repositories.Store) error) error {
	return fn(t)
}

type itemRepo struct {
	acc accessor
}

func (r *itemRepo) Get(_ context.Context, id uuid.UUID) (*models.FridgeItem, error) {
	var (
		item models.FridgeItem
		ok   bool
	)
	r.acc.read(func(st *state) {
		var row storedItem
		row, ok = st.items[id]
		item = row.item
	})
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &item, nil
}

func (r *itemRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	r.acc.read(func(st *state) { _, ok = st.items[id] })
	return ok, nil
}

func (r *itemRepo) Insert(_ context.Context, item *models.FridgeItem) error {
	var err error
	r.acc.write(func(st *state) {
		if _, taken := st.items[item.Key()]; taken {
			err = domain.ErrDuplicateItem
			return
		}
		st.nextSeq++
		st.items[item.Key()] = storedItem{item: *item, seq: st.nextSeq}
	})
	return err
}

func (r *itemRepo) Delete(_ context.Context, id uuid.UUID) (*models.FridgeItem, error) {
	var removed *models.FridgeItem
	r.acc.write(func(st *state) {
		row, ok := st.items[id]
		if !ok {
			return
		}
		delete(st.items, id)
		item := row.item
		removed = &item
	})
	return removed, nil
}

func (r *itemRepo) DeleteByType(_ context.Context, typeID int64) (int, error) {
	var n int
	r.acc.write(func(st *state) {
		for id, row := range st.items {
			if row.item.TypeID == typeID {
				delete(st.items, id)
				n++
			}
		}
	})
	return n, nil
}

func (r *itemRepo) FindByType(_ context.Context, typeID int64) ([]*models.FridgeItem, error) {
	var out []*models.FridgeItem
	r.acc.read(func(st *state) {
		out = st.ordered(func(i models.FridgeItem) bool { return i.TypeID == typeID })
	})
	return out, nil
}

func (r *itemRepo) FindAll(_ context.Context) ([]*models.FridgeItem, error) {
	var out []*models.FridgeItem
	r.acc.read(func(st *state) { out = st.ordered(nil) })
	return out, nil
}

func (r *itemRepo) Count(_ context.Context) (int, error) {
	var n int
	r.acc.read(func(st *state) { n = len(st.items) })
	return n, nil
}

type typeRepo struct {
	acc accessor
}

func (r *typeRepo) Get(_ context.Context, id int64) (*models.ItemType, error) {
	var (
		t  models.ItemType
		ok bool
	)
	r.acc.read(func(st *state) { t, ok = st.types[id] })
	if !ok {
		return nil, domain.ErrItemTypeNotFound
	}
	return &t, nil
}

func (r *typeRepo) Save(_ context.Context, t *models.ItemType) error {
	r.acc.write(func(st *state) { st.types[t.Key()] = *t })
	return nil
}

func (r *typeRepo) Delete(_ context.Context, id int64) (int, error) {
	var n int
	r.acc.write(func(st *state) {
		if _, ok := st.types[id]; ok {
			delete(st.types, id)
			n = 1
		}
	})
	return n, nil
}

func (r *typeRepo) Count(_ context.Context) (int, error) {
	var n int
	r.acc.read(func(st *state) { n = len(st.types) })
	return n, nil
}
