package models

// Product is a catalog entry keyed by SKU.
type Product struct {
	SKU          string  `gorm:"size:120;primaryKey" json:"sku"`
	Name         string  `gorm:"size:255;not null" json:"name"`
	DefaultPrice float64 `gorm:"type:numeric(12,2);default:0" json:"default_price"`
}

func (Product) TableName() string { return "products" }

// ProductAlias maps a free-text synonym onto a canonical SKU, many-to-one.
type ProductAlias struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Alias string `gorm:"size:255;index;not null" json:"alias"`
	SKU   string `gorm:"size:120;index;not null" json:"sku"`
}

func (ProductAlias) TableName() string { return "product_aliases" }
