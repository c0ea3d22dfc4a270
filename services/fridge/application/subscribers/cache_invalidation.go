// Package subscribers holds the handlers the worker runs for fridge events.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/smartfridge/pkg/logger"
	domainevents "github.com/ghuser/smartfridge/services/fridge/domain/events"
)

// AverageInvalidator drops a cached per-type average.
type AverageInvalidator interface {
	Delete(ctx context.Context, typeID int64) error
}

// InvalidateAverage returns a handler that drops the cached average of the
// event's type. It accepts every fridge topic, since each payload carries
// type_id. Deleting is idempotent, so redelivery is harmless.
//
// A payload that cannot be decoded is logged and acked; retrying it would
// never succeed.
func InvalidateAverage(cache AverageInvalidator, log logger.Logger) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var ref domainevents.TypeRef
		if err := json.Unmarshal(msg.Payload, &ref); err != nil || ref.TypeID <= 0 {
			log.WarnContext(ctx, "dropping fridge event without a type id",
				"message_uuid", msg.UUID, "error", err)
			return nil
		}

		if err := cache.Delete(ctx, ref.TypeID); err != nil {
			return fmt.Errorf("invalidate average of type %d: %w", ref.TypeID, err)
		}
		log.DebugContext(ctx, "cached average invalidated",
			"type_id", ref.TypeID, "message_uuid", msg.UUID)
		return nil
	}
}
