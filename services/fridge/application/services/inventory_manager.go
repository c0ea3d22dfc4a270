package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	pkgcache "github.com/ghuser/smartfridge/pkg/cache"
	"github.com/ghuser/smartfridge/pkg/logger"
	"github.com/ghuser/smartfridge/services/fridge/domain"
	"github.com/ghuser/smartfridge/services/fridge/domain/models"
	"github.com/ghuser/smartfridge/services/fridge/domain/repositories"
	domainsvcs "github.com/ghuser/smartfridge/services/fridge/domain/services"
)

const instrumentationName = "github.com/ghuser/smartfridge/services/fridge"

// AverageCache is the read-through cache of per-type averages.
//
// Get returns the type's generation with redis.Nil on a miss. Delete bumps
// the generation, and Set stores nothing unless the generation it is given is
// still current.
type AverageCache interface {
	Get(ctx context.Context, typeID int64) (*pkgcache.CachedAverage, int64, error)
	Set(ctx context.Context, avg *pkgcache.CachedAverage, gen int64) (bool, error)
	Delete(ctx context.Context, typeID int64) error
}

// AddItemCommand is the input of AddItem. Nil pointers model missing values.
type AddItemCommand struct {
	TypeID     int64
	ItemID     string
	TypeName   *string
	FillFactor *float64
}

// InventoryManager enforces the inventory rules over the Item and Type
// stores. It keeps no state between calls; every mutation runs in a single
// store transaction.
type InventoryManager struct {
	store   repositories.Store
	cache   AverageCache
	log     logger.Logger
	tracer  trace.Tracer
	metrics *inventoryMetrics
	now     func() time.Time
}

// Option configures an InventoryManager.
type Option func(*InventoryManager)

// WithAverageCache enables the read-through average cache.
func WithAverageCache(c AverageCache) Option {
	return func(m *InventoryManager) { m.cache = c }
}

// WithMeterProvider overrides the global OTel meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(m *InventoryManager) { m.metrics = newInventoryMetrics(mp.Meter(instrumentationName)) }
}

// NewInventoryManager returns an InventoryManager over store.
func NewInventoryManager(store repositories.Store, log logger.Logger, opts ...Option) *InventoryManager {
	m := &InventoryManager{
		store:   store,
		log:     log.With("component", "inventory_manager"),
		tracer:  otel.Tracer(instrumentationName),
		metrics: newInventoryMetrics(otel.Meter(instrumentationName)),
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddItem validates cmd and stores the item together with its type. The
// type name is overwritten when the type already exists.
//
// Errors: *domain.InvalidIDError for a malformed id, *domain.ValidationError
// listing every other violated rule, *domain.DuplicateItemError when the id
// is already stored. Nothing is written on any of them.
func (m *InventoryManager) AddItem(ctx context.Context, cmd AddItemCommand) (err error) {
	ctx, span := m.tracer.Start(ctx, "fridge.add_item", trace.WithAttributes(
		attribute.Int64("fridge.type_id", cmd.TypeID),
		attribute.String("fridge.item_id", cmd.ItemID),
	))
	defer func() { endSpan(span, err) }()

	item, itemType, err := domainsvcs.ValidateNewItem(domainsvcs.NewItemInput{
		TypeID:     cmd.TypeID,
		ItemID:     cmd.ItemID,
		TypeName:   cmd.TypeName,
		FillFactor: cmd.FillFactor,
	})
	if err != nil {
		return err
	}

	err = m.store.WithTx(ctx, func(tx repositories.Store) error {
		exists, err := tx.Items().Exists(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("check item: %w", err)
		}
		if exists {
			return &domain.DuplicateItemError{ID: item.ID}
		}
		if err := tx.Types().Save(ctx, itemType); err != nil {
			return fmt.Errorf("save item type: %w", err)
		}
		if err := tx.Items().Insert(ctx, item); err != nil {
			if errors.Is(err, domain.ErrDuplicateItem) {
				return &domain.DuplicateItemError{ID: item.ID}
			}
			return fmt.Errorf("insert item: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.invalidate(ctx, item.TypeID)
	m.metrics.added.Add(ctx, 1, metric.WithAttributes(attribute.Int64("fridge.type_id", item.TypeID)))
	m.log.InfoContext(ctx, "item added",
		"item_id", item.ID, "type_id", item.TypeID, "fill_factor", item.FillFactor)
	return nil
}

// RemoveItem deletes the item with the given id. An unknown id is a no-op;
// a malformed one fails with *domain.InvalidIDError. The item's type is
// kept even when no items of it remain.
func (m *InventoryManager) RemoveItem(ctx context.Context, itemID string) (err error) {
	ctx, span := m.tracer.Start(ctx, "fridge.remove_item", trace.WithAttributes(
		attribute.String("fridge.item_id", itemID),
	))
	defer func() { endSpan(span, err) }()

	id, err := domainsvcs.ParseItemID(itemID)
	if err != nil {
		return err
	}

	var removed *models.FridgeItem
	err = m.store.WithTx(ctx, func(tx repositories.Store) error {
		var err error
		if removed, err = tx.Items().Delete(ctx, id); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if removed == nil {
		m.log.WarnContext(ctx, "no item removed", "item_id", id)
		return nil
	}

	m.invalidate(ctx, removed.TypeID)
	m.metrics.removed.Add(ctx, 1, metric.WithAttributes(attribute.Int64("fridge.type_id", removed.TypeID)))
	m.log.InfoContext(ctx, "item removed", "item_id", id, "type_id", removed.TypeID)
	return nil
}

// ItemsBelowFillFactor returns, per type, the items whose fill factor is at
// or below fillFactor. Buckets are ordered by type id.
//
// A nil, NaN or out of (0, 1] threshold yields an empty result, not an error.
func (m *InventoryManager) ItemsBelowFillFactor(ctx context.Context, fillFactor *float64) (buckets []models.Bucket, err error) {
	ctx, span := m.tracer.Start(ctx, "fridge.items_below_fill_factor")
	defer func() { endSpan(span, err) }()

	if !domainsvcs.ValidThreshold(fillFactor) {
		m.log.WarnContext(ctx, "fill factor threshold out of range, returning no items",
			"fill_factor", formatThreshold(fillFactor))
		return []models.Bucket{}, nil
	}
	span.SetAttributes(attribute.Float64("fridge.fill_factor", *fillFactor))

	items, err := m.store.Items().FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	buckets = domainsvcs.BucketsAtOrBelow(items, *fillFactor)
	span.SetAttributes(attribute.Int("fridge.bucket_count", len(buckets)))
	return buckets, nil
}

// AverageFillFactor is the mean fill factor of the non-empty items of the
// type, or 0 when there are none.
func (m *InventoryManager) AverageFillFactor(ctx context.Context, typeID int64) (avg float64, err error) {
	ctx, span := m.tracer.Start(ctx, "fridge.average_fill_factor", trace.WithAttributes(
		attribute.Int64("fridge.type_id", typeID),
	))
	defer func() { endSpan(span, err) }()

	// The average is cached only on a clean miss, under the generation read
	// before the store. A change committed in between bumps it.
	var (
		gen       int64
		cacheable bool
	)
	if m.cache != nil {
		cached, g, err := m.cache.Get(ctx, typeID)
		switch {
		case err == nil:
			m.metrics.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "hit")))
			span.SetAttributes(attribute.Bool("fridge.cache_hit", true))
			return cached.Average, nil
		case errors.Is(err, redis.Nil):
			m.metrics.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "miss")))
			gen, cacheable = g, true
		default:
			m.metrics.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "error")))
			m.log.WarnContext(ctx, "average cache read failed", "type_id", typeID, "error", err)
		}
	}

	items, err := m.store.Items().FindByType(ctx, typeID)
	if err != nil {
		return 0, fmt.Errorf("list items of type: %w", err)
	}
	if len(items) == 0 {
		m.log.WarnContext(ctx, "no items of type", "type_id", typeID)
	}
	avg = domainsvcs.AverageFillFactor(items)

	if cacheable {
		stored, err := m.cache.Set(ctx, &pkgcache.CachedAverage{
			TypeID:     typeID,
			Average:    avg,
			ItemCount:  len(items),
			ComputedAt: m.now(),
		}, gen)
		switch {
		case err != nil:
			m.log.WarnContext(ctx, "average cache write failed", "type_id", typeID, "error", err)
		case !stored:
			m.log.DebugContext(ctx, "average changed while computing, not cached", "type_id", typeID)
		}
	}
	return avg, nil
}

// ForgetType deletes every item of the type and then the type itself. When
// the type has no items nothing is deleted, not even the type.
func (m *InventoryManager) ForgetType(ctx context.Context, typeID int64) (err error) {
	ctx, span := m.tracer.Start(ctx, "fridge.forget_type", trace.WithAttributes(
		attribute.Int64("fridge.type_id", typeID),
	))
	defer func() { endSpan(span, err) }()

	var removed int
	err = m.store.WithTx(ctx, func(tx repositories.Store) error {
		var err error
		if removed, err = tx.Items().DeleteByType(ctx, typeID); err != nil {
			return fmt.Errorf("delete items of type: %w", err)
		}
		if removed == 0 {
			return nil
		}
		if _, err := tx.Types().Delete(ctx, typeID); err != nil {
			return fmt.Errorf("delete item type: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	span.SetAttributes(attribute.Int("fridge.items_removed", removed))
	if removed == 0 {
		m.log.WarnContext(ctx, "no items of type to forget", "type_id", typeID)
		return nil
	}

	m.invalidate(ctx, typeID)
	m.metrics.forgotten.Add(ctx, 1)
	m.metrics.removed.Add(ctx, int64(removed), metric.WithAttributes(attribute.Int64("fridge.type_id", typeID)))
	m.log.InfoContext(ctx, "item type forgotten", "type_id", typeID, "items_removed", removed)
	return nil
}

// invalidate drops the cached average of a type after a committed change.
func (m *InventoryManager) invalidate(ctx context.Context, typeID int64) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Delete(ctx, typeID); err != nil {
		m.log.WarnContext(ctx, "average cache invalidation failed", "type_id", typeID, "error", err)
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func formatThreshold(f *float64) string {
	if f == nil {
		return "<nil>"
	}
	return fmt.Sprint(*f)
}

type inventoryMetrics struct {
	added        metric.Int64Counter
	removed      metric.Int64Counter
	forgotten    metric.Int64Counter
	cacheLookups metric.Int64Counter
}

func newInventoryMetrics(meter metric.Meter) *inventoryMetrics {
	return &inventoryMetrics{
		added:        counter(meter, "fridge.items.added", "Items added to the fridge"),
		removed:      counter(meter, "fridge.items.removed", "Items removed from the fridge, singly or by forgetting their type"),
		forgotten:    counter(meter, "fridge.types.forgotten", "Item types forgotten"),
		cacheLookups: counter(meter, "fridge.average_cache.lookups", "Average cache lookups by result"),
	}
}

// counter falls back to a no-op instrument so a bad name never breaks the
// inventory.
func counter(meter metric.Meter, name, description string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		return noop.Int64Counter{}
	}
	return c
}
