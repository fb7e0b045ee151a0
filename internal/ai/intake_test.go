package ai

import (
	"errors"
	"testing"

	"github.com/kedaiflow/omsgo/internal/models"
)

func TestDecodeIntakeFull(t *testing.T) {
	raw := `{
		"order": {
			"name": "Ali",
			"phone": "012-345 6789",
			"type": "RENTAL",
			"items": [{"name": "sofa", "qty": 2, "unit_price": 150}]
		},
		"event": {"type": "NONE"}
	}`

	order, event, err := decodeIntake(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if order.Name != "Ali" || order.Type != models.OrderTypeRental {
		t.Errorf("unexpected order %+v", order)
	}
	if order.Phone != "+60123456789" {
		t.Errorf("phone not normalized: %s", order.Phone)
	}
	if len(order.Items) != 1 || order.Items[0].Qty != 2 {
		t.Errorf("unexpected items %+v", order.Items)
	}
	if event.Type != models.EventNone {
		t.Errorf("unexpected event %+v", event)
	}
}

func TestDecodeIntakeCoercions(t *testing.T) {
	// Missing items, type and event must pick up their fixed defaults.
	raw := `{"order": {"name": "Siti"}}`

	order, event, err := decodeIntake(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if order.Items == nil || len(order.Items) != 0 {
		t.Errorf("items should default to empty, got %v", order.Items)
	}
	if order.Type != models.OrderTypeOutright {
		t.Errorf("type should default to OUTRIGHT, got %s", order.Type)
	}
	if event.Type != models.EventNone {
		t.Errorf("event should default to NONE, got %s", event.Type)
	}
}

func TestDecodeIntakeQtyDefaultsToOne(t *testing.T) {
	raw := `{"order": {"name": "Ali", "items": [{"name": "kipas"}]}, "event": {"type": "NONE"}}`

	order, _, err := decodeIntake(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if order.Items[0].Qty != 1 {
		t.Errorf("qty should default to 1, got %d", order.Items[0].Qty)
	}
}

func TestDecodeIntakeFencedOutput(t *testing.T) {
	raw := "```json\n{\"order\": {\"name\": \"Ali\"}, \"event\": {\"type\": \"RETURN\"}}\n```"

	_, event, err := decodeIntake(raw)
	if err != nil {
		t.Fatalf("fenced output should still decode: %v", err)
	}
	if event.Type != models.EventReturn {
		t.Errorf("unexpected event %+v", event)
	}
}

func TestDecodeIntakeMalformed(t *testing.T) {
	for _, raw := range []string{"not json at all", `{"event": {"type": "NONE"}}`} {
		_, _, err := decodeIntake(raw)
		if !errors.Is(err, ErrBadExtraction) {
			t.Errorf("decodeIntake(%q): expected ErrBadExtraction, got %v", raw, err)
		}
	}
}
