package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/smartfridge/services/fridge/domain/events"
)

func TestEvents_JSONFieldNames(t *testing.T) {
	now := time.Now().UTC()
	tests := []struct {
		name   string
		event  any
		fields []string
	}{
		{
			name: "item added",
			event: events.ItemAddedEvent{
				EventID: uuid.New(), Version: 1, ItemID: uuid.New(),
				TypeID: 1, FillFactor: 0.5, OccurredAt: now,
			},
			fields: []string{"event_id", "version", "item_id", "type_id", "fill_factor", "occurred_at"},
		},
		{
			name: "item removed",
			event: events.ItemRemovedEvent{
				EventID: uuid.New(), Version: 1, ItemID: uuid.New(), TypeID: 1, OccurredAt: now,
			},
			fields: []string{"event_id", "version", "item_id", "type_id", "occurred_at"},
		},
		{
			name: "type forgotten",
			event: events.TypeForgottenEvent{
				EventID: uuid.New(), Version: 1, TypeID: 1, ItemsRemoved: 3, OccurredAt: now,
			},
			fields: []string{"event_id", "version", "type_id", "items_removed", "occurred_at"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.event)
			if err != nil {
				t.Fatalf("json.Marshal failed: %v", err)
			}
			var raw map[string]any
			if err := json.Unmarshal(data, &raw); err != nil {
				t.Fatalf("unmarshal to map failed: %v", err)
			}
			for _, field := range tt.fields {
				if _, ok := raw[field]; !ok {
					t.Errorf("expected JSON field %q not found in: %s", field, data)
				}
			}
		})
	}
}

func TestTypeRef_DecodesEveryTopicPayload(t *testing.T) {
	payloads := []any{
		events.ItemAddedEvent{TypeID: 4},
		events.ItemRemovedEvent{TypeID: 4},
		events.TypeForgottenEvent{TypeID: 4},
	}
	for _, p := range payloads {
		data, _ := json.Marshal(p)
		var ref events.TypeRef
		if err := json.Unmarshal(data, &ref); err != nil {
			t.Fatalf("unmarshal %T: %v", p, err)
		}
		if ref.TypeID != 4 {
			t.Errorf("%T: expected type_id 4, got %d", p, ref.TypeID)
		}
	}
}

func TestTopics(t *testing.T) {
	want := map[string]bool{
		"fridge.item.added":     true,
		"fridge.item.removed":   true,
		"fridge.type.forgotten": true,
	}
	if len(events.Topics) != len(want) {
		t.Fatalf("expected %d topics, got %d", len(want), len(events.Topics))
	}
	for _, topic := range events.Topics {
		if !want[topic] {
			t.Errorf("unexpected topic %q", topic)
		}
	}
}
