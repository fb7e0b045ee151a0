package models

// OrderItem is a line item. SKU stays empty when the catalog resolver found
// no match; unresolved items are still recorded. Immutable once created:
// there is no update or delete path.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"order_id"`
	SKU       string  `gorm:"size:120;default:''" json:"sku"`
	Name      string  `gorm:"size:255;not null" json:"name"`
	Qty       int     `gorm:"not null" json:"qty"`
	UnitPrice float64 `gorm:"type:numeric(12,2)" json:"unit_price"`
}

func (OrderItem) TableName() string { return "order_items" }
