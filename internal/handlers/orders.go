package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/kedaiflow/omsgo/internal/ai"
	"github.com/kedaiflow/omsgo/internal/models"
	"github.com/kedaiflow/omsgo/internal/services/ledger"
	"github.com/kedaiflow/omsgo/internal/services/printer"
	"gorm.io/gorm"
)

// OrderResponse is the canonical order payload: header plus the recomputed
// running balance.
type OrderResponse struct {
	Order  *models.Order      `json:"order"`
	Items  []models.OrderItem `json:"items"`
	Totals ledger.Totals      `json:"totals"`
}

func (rt *Router) orderPayload(order *models.Order) (*OrderResponse, error) {
	totals, items, err := rt.ledger.TotalsFor(order.ID)
	if err != nil {
		return nil, err
	}
	return &OrderResponse{Order: order, Items: items, Totals: totals}, nil
}

// createOrder accepts the same structured shape the extractor produces, so
// a reviewed /parse result can be submitted unchanged.
func (rt *Router) createOrder(w http.ResponseWriter, req *http.Request) {
	var in ai.ParsedOrder
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Name == "" || len(in.Items) == 0 {
		respondError(w, http.StatusBadRequest, "name and items are required")
		return
	}

	order, err := rt.ledger.CreateOrder(orderInputFromParsed(&in, nil))
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

// listOrders searches orders by free text and status.
func (rt *Router) listOrders(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	rows, err := rt.ledger.Search(ledger.SearchFilter{
		Query:  q.Get("q"),
		Status: strings.ToUpper(q.Get("status")),
		Type:   strings.ToUpper(q.Get("type")),
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"orders": rows})
}

// PatchOrderRequest carries the mutable order and customer contact fields.
// Absent fields are left untouched.
type PatchOrderRequest struct {
	Status  *string `json:"status,omitempty"`
	Notes   *string `json:"notes,omitempty"`
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

func (rt *Router) patchOrder(w http.ResponseWriter, req *http.Request) {
	code := mux.Vars(req)["code"]

	var in PatchOrderRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := ledger.OrderPatch{
		Notes:   in.Notes,
		Name:    in.Name,
		Phone:   in.Phone,
		Address: in.Address,
	}
	if in.Status != nil {
		s := models.OrderStatus(strings.ToUpper(*in.Status))
		switch s {
		case models.OrderStatusDraft, models.OrderStatusConfirmed,
			models.OrderStatusReturned, models.OrderStatusCancelled:
			patch.Status = &s
		default:
			respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", *in.Status))
			return
		}
	}

	order, err := rt.ledger.UpdateOrder(code, patch)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	payload, err := rt.orderPayload(order)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payload)
}

func (rt *Router) orderInvoicePDF(w http.ResponseWriter, req *http.Request) {
	rt.orderDocumentPDF(w, req, "INVOICE")
}

func (rt *Router) orderReceiptPDF(w http.ResponseWriter, req *http.Request) {
	rt.orderDocumentPDF(w, req, "RECEIPT")
}

// orderDocumentPDF renders an invoice or receipt for the order in the URL.
// Paid and balance lines appear once at least one payment exists.
func (rt *Router) orderDocumentPDF(w http.ResponseWriter, req *http.Request, title string) {
	code := mux.Vars(req)["code"]

	order, err := rt.ledger.GetByCode(code)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	_, items, err := rt.ledger.TotalsFor(order.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	payments, err := rt.ledger.PaymentsFor(order.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	var profile *models.CompanyProfile
	var p models.CompanyProfile
	if err := rt.db.DB.First(&p, 1).Error; err == nil {
		profile = &p
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(w, http.StatusInternalServerError, "failed to load company profile")
		return
	}

	pdf, err := printer.GenerateOrderPDF(order, items, order.Customer, payments, profile, title)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to render document")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("inline; filename=%s_%s.pdf", strings.ToLower(title), order.OrderCode))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
