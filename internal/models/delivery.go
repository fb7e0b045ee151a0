package models

import (
	"time"

	"gorm.io/datatypes"
)

// DeliveryKind distinguishes outbound deliveries from collections and
// service visits.
type DeliveryKind string

const (
	DeliveryOutbound   DeliveryKind = "delivery"
	DeliveryCollection DeliveryKind = "collection"
	DeliveryService    DeliveryKind = "service"
)

// DeliveryStatus values are recorded, not enforced: the driver app reports
// whatever happened and the trail lives in delivery_events.
type DeliveryStatus string

const (
	DeliveryScheduled DeliveryStatus = "scheduled"
	DeliveryAssigned  DeliveryStatus = "assigned"
	DeliveryEnroute   DeliveryStatus = "enroute"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryReturned  DeliveryStatus = "returned"
	DeliveryFailed    DeliveryStatus = "failed"
	DeliveryCancelled DeliveryStatus = "cancelled"
)

// Delivery is a scheduled drop-off, collection or service visit for an order.
type Delivery struct {
	ID             string         `gorm:"size:36;primaryKey" json:"id"`
	OrderID        uint           `gorm:"index;not null" json:"order_id"`
	Kind           DeliveryKind   `gorm:"size:20;default:delivery" json:"kind"`
	Status         DeliveryStatus `gorm:"size:20;default:scheduled;index" json:"status"`
	ScheduledFor   time.Time      `gorm:"not null" json:"scheduled_for"`
	RecipientName  string         `gorm:"size:200" json:"recipient_name,omitempty"`
	RecipientPhone string         `gorm:"size:50" json:"recipient_phone,omitempty"`
	DropoffAddress string         `gorm:"type:text" json:"dropoff_address,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (Delivery) TableName() string { return "deliveries" }

// DeliveryEvent is the append-only trail of what happened to a delivery.
type DeliveryEvent struct {
	ID         string         `gorm:"size:36;primaryKey" json:"id"`
	DeliveryID string         `gorm:"size:36;index;not null" json:"delivery_id"`
	Event      string         `gorm:"size:80;not null" json:"event"`
	At         time.Time      `json:"at"`
	Meta       datatypes.JSON `json:"meta,omitempty"`
}

func (DeliveryEvent) TableName() string { return "delivery_events" }
