package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kedaiflow/omsgo/internal/models"
	"github.com/kedaiflow/omsgo/internal/utils"
)

// ErrBadExtraction signals that the extraction service returned unusable
// output. There is no retry and no repair pass; the caller surfaces it as
// an upstream failure.
var ErrBadExtraction = errors.New("extraction service returned unusable output")

// ParsedItem is one line item as extracted from chat text.
type ParsedItem struct {
	Name      string  `json:"name"`
	Qty       int     `json:"qty,omitempty"`
	UnitPrice float64 `json:"unit_price,omitempty"`
	SKU       string  `json:"sku,omitempty"`
}

// ParsedOrder is the structured order half of an extraction result.
type ParsedOrder struct {
	OrderID string           `json:"order_id,omitempty"`
	Name    string           `json:"name"`
	Phone   string           `json:"phone,omitempty"`
	Address string           `json:"address,omitempty"`
	Type    models.OrderType `json:"type"`
	Items   []ParsedItem     `json:"items"`
	Notes   string           `json:"notes,omitempty"`
}

// ParsedEvent is the event half of an extraction result. Type is NONE when
// the text carries no actionable event.
type ParsedEvent struct {
	Type             models.EventType `json:"type"`
	ReferenceOrderID string           `json:"reference_order_id,omitempty"`
}

// Extractor turns raw chat text into a structured order/event pair. The
// live implementation calls an external model; tests substitute a
// deterministic stub. Never test against the live service.
type Extractor interface {
	Extract(ctx context.Context, text string) (*ParsedOrder, *ParsedEvent, error)
}

type intakeEnvelope struct {
	Order *ParsedOrder `json:"order"`
	Event *ParsedEvent `json:"event"`
}

// decodeIntake parses raw model output and applies the fixed coercions:
// missing items become an empty list, a missing order type defaults to
// OUTRIGHT, a missing event defaults to NONE, and item quantities default
// to 1. Anything non-JSON is a hard ErrBadExtraction.
func decodeIntake(raw string) (*ParsedOrder, *ParsedEvent, error) {
	var env intakeEnvelope
	if err := json.Unmarshal([]byte(utils.SanitizeJSON(raw)), &env); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadExtraction, err)
	}
	if env.Order == nil {
		return nil, nil, fmt.Errorf("%w: missing order object", ErrBadExtraction)
	}

	order := env.Order
	if order.Items == nil {
		order.Items = []ParsedItem{}
	}
	for i := range order.Items {
		if order.Items[i].Qty == 0 {
			order.Items[i].Qty = 1
		}
	}
	if order.Type == "" {
		order.Type = models.OrderTypeOutright
	}

	event := env.Event
	if event == nil {
		event = &ParsedEvent{Type: models.EventNone}
	}
	if event.Type == "" {
		event.Type = models.EventNone
	}

	// The extracted phone always goes through normalization before use.
	order.Phone = utils.NormalizePhone(order.Phone)

	return order, event, nil
}
