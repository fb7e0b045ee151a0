package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kedaiflow/omsgo/internal/models"
	"github.com/kedaiflow/omsgo/internal/services/ledger"
)

// LegacyOrderRequest is the order shape the old shop frontend submits.
type LegacyOrderRequest struct {
	CustomerName         string           `json:"customer_name"`
	CustomerPhonePrimary string           `json:"customer_phone_primary"`
	CustomerAddress      string           `json:"customer_address"`
	OrderType            string           `json:"order_type"`
	Notes                string           `json:"notes"`
	LineItems            []LegacyLineItem `json:"line_items"`
}

// LegacyLineItem mirrors the old frontend's line item fields.
type LegacyLineItem struct {
	ProductCode  string  `json:"product_code"`
	Description  string  `json:"description"`
	Qty          int     `json:"qty"`
	UnitPriceMYR float64 `json:"unit_price_myr"`
}

// normalizeOrderType maps the old frontend's spellings onto the canonical
// enum. Unknown values fall through to OUTRIGHT.
func normalizeOrderType(raw string) models.OrderType {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "RENTAL":
		return models.OrderTypeRental
	case "INSTALMENT", "INSTALLMENT":
		return models.OrderTypeInstalment
	case "OUTRIGHT", "OUTRIGHT_PURCHASE":
		return models.OrderTypeOutright
	}
	return models.OrderTypeOutright
}

func (rt *Router) legacyCreateOrder(w http.ResponseWriter, req *http.Request) {
	var in LegacyOrderRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.CustomerName == "" || in.CustomerPhonePrimary == "" {
		respondError(w, http.StatusBadRequest, "customer_name and customer_phone_primary are required")
		return
	}
	if len(in.LineItems) == 0 {
		respondError(w, http.StatusBadRequest, "at least one line item is required")
		return
	}

	items := make([]ledger.NewItem, 0, len(in.LineItems))
	for _, li := range in.LineItems {
		items = append(items, ledger.NewItem{
			Name:      li.Description,
			Qty:       li.Qty,
			UnitPrice: li.UnitPriceMYR,
			SKU:       li.ProductCode,
		})
	}

	order, err := rt.ledger.CreateOrder(ledger.CreateOrderInput{
		CustomerName: in.CustomerName,
		Phone:        in.CustomerPhonePrimary,
		Address:      in.CustomerAddress,
		Type:         normalizeOrderType(in.OrderType),
		Notes:        in.Notes,
		Items:        items,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	payload, err := rt.orderPayload(order)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, payload)
}

// legacyListOrders returns the most recent orders, capped at 100.
func (rt *Router) legacyListOrders(w http.ResponseWriter, req *http.Request) {
	rows, err := rt.ledger.Search(ledger.SearchFilter{Limit: 100})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"orders": rows})
}
