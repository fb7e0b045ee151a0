package models

import "time"

// EventType is a business occurrence recorded against an order.
type EventType string

const (
	EventReturn           EventType = "RETURN"
	EventCollect          EventType = "COLLECT"
	EventInstalmentCancel EventType = "INSTALMENT_CANCEL"
	EventBuyback          EventType = "BUYBACK"
	EventNone             EventType = "NONE"
)

// StatusForEvent maps event types to the order status they force. The
// mapping is one-way: nothing transitions back to CONFIRMED, and there is
// no guard against re-applying a terminal event (kept no-op-safe).
func StatusForEvent(t EventType) (OrderStatus, bool) {
	switch t {
	case EventReturn, EventCollect:
		return OrderStatusReturned, true
	case EventInstalmentCancel, EventBuyback:
		return OrderStatusCancelled, true
	}
	return "", false
}

// Event is an append-only audit record. OrderID is nullable: events parsed
// from chat may not reference a known order.
type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   *uint     `gorm:"index" json:"order_id,omitempty"`
	Type      EventType `gorm:"size:40;not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func (Event) TableName() string { return "events" }
