package catalog

import (
	"errors"
	"fmt"

	"github.com/kedaiflow/omsgo/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrSKUExists is returned when creating a product with a taken SKU.
	ErrSKUExists = errors.New("sku already exists")
	// ErrSKUNotFound is returned when an alias references an unknown SKU.
	ErrSKUNotFound = errors.New("sku not found")
)

// Service resolves free-text item names against the product catalog and
// manages catalog entries.
type Service struct {
	db *gorm.DB
}

// NewService creates a catalog service on the given database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Resolve maps a requested item onto the catalog. Resolution is a single
// forward pass with no backtracking:
//  1. explicit SKU: catalog default price fills in a missing/zero caller
//     price, the caller's name is kept (even when the SKU is unknown)
//  2. alias match on name (case-insensitive): alias SKU and product default
//     price win, any caller price is discarded
//  3. product-name match (case-insensitive): canonical SKU, price and name
//  4. no match: item is recorded unresolved with whatever the caller sent
//
// A unitPrice of 0 is treated as absent.
func (s *Service) Resolve(name, sku string, unitPrice float64) (string, float64, string) {
	if sku != "" {
		var prod models.Product
		if err := s.db.First(&prod, "sku = ?", sku).Error; err == nil && unitPrice == 0 {
			return sku, prod.DefaultPrice, name
		}
		return sku, unitPrice, name
	}

	var alias models.ProductAlias
	if err := s.db.Where("LOWER(alias) = LOWER(?)", name).First(&alias).Error; err == nil {
		var prod models.Product
		if err := s.db.First(&prod, "sku = ?", alias.SKU).Error; err == nil {
			return alias.SKU, prod.DefaultPrice, name
		}
		return alias.SKU, unitPrice, name
	}

	var prod models.Product
	if err := s.db.Where("LOWER(name) = LOWER(?)", name).First(&prod).Error; err == nil {
		return prod.SKU, prod.DefaultPrice, prod.Name
	}

	return "", unitPrice, name
}

// CreateProduct adds a catalog entry. The SKU must be free.
func (s *Service) CreateProduct(sku, name string, defaultPrice float64) error {
	var existing models.Product
	if err := s.db.First(&existing, "sku = ?", sku).Error; err == nil {
		return ErrSKUExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("catalog lookup: %w", err)
	}

	prod := models.Product{SKU: sku, Name: name, DefaultPrice: defaultPrice}
	if err := s.db.Create(&prod).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// CreateAlias maps a free-text synonym onto an existing SKU.
func (s *Service) CreateAlias(alias, sku string) error {
	var prod models.Product
	if err := s.db.First(&prod, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSKUNotFound
		}
		return fmt.Errorf("catalog lookup: %w", err)
	}

	a := models.ProductAlias{Alias: alias, SKU: sku}
	if err := s.db.Create(&a).Error; err != nil {
		return fmt.Errorf("create alias: %w", err)
	}
	return nil
}

// Suggestion is one row of the item-suggestion search.
type Suggestion struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	DefaultPrice float64 `json:"default_price"`
}

const suggestLimit = 20

// Suggest returns products and aliases whose name contains q,
// case-insensitively. Substring matching lives here only; resolution never
// does fuzzy matching.
func (s *Service) Suggest(q string) ([]Suggestion, error) {
	like := "%" + q + "%"
	out := make([]Suggestion, 0, suggestLimit)

	var prods []models.Product
	if err := s.db.Where("LOWER(name) LIKE LOWER(?)", like).Find(&prods).Error; err != nil {
		return nil, fmt.Errorf("suggest products: %w", err)
	}
	for _, p := range prods {
		out = append(out, Suggestion{SKU: p.SKU, Name: p.Name, DefaultPrice: p.DefaultPrice})
	}

	var aliases []models.ProductAlias
	if err := s.db.Where("LOWER(alias) LIKE LOWER(?)", like).Find(&aliases).Error; err != nil {
		return nil, fmt.Errorf("suggest aliases: %w", err)
	}
	for _, a := range aliases {
		var prod models.Product
		price := 0.0
		if err := s.db.First(&prod, "sku = ?", a.SKU).Error; err == nil {
			price = prod.DefaultPrice
		}
		out = append(out, Suggestion{SKU: a.SKU, Name: a.Alias, DefaultPrice: price})
	}

	if len(out) > suggestLimit {
		out = out[:suggestLimit]
	}
	return out, nil
}
