package models

import "time"

// OrderType classifies how the customer pays for the goods
type OrderType string

const (
	OrderTypeRental     OrderType = "RENTAL"
	OrderTypeInstalment OrderType = "INSTALMENT"
	OrderTypeOutright   OrderType = "OUTRIGHT"
)

// OrderStatus defines possible order statuses
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT" // present in schema, never set by code
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusReturned  OrderStatus = "RETURNED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order is the ledger header. Totals are never stored here; they are
// recomputed from items and payments on every read.
type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	OrderCode  string      `gorm:"size:40;uniqueIndex;not null" json:"order_code"`
	CustomerID uint        `gorm:"index;not null" json:"customer_id"`
	Type       OrderType   `gorm:"size:20;not null" json:"type"`
	Status     OrderStatus `gorm:"size:20;default:CONFIRMED" json:"status"`
	Notes      string      `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`

	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Payments []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

func (Order) TableName() string { return "orders" }
