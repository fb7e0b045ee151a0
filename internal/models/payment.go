package models

import "time"

// Payment is an append-only ledger entry against an order.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	Amount    float64   `gorm:"type:numeric(12,2)" json:"amount"`
	Method    string    `gorm:"size:50" json:"method"`
	CreatedAt time.Time `json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
