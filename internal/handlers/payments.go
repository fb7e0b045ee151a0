package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kedaiflow/omsgo/internal/models"
)

// PaymentRequest records money received against an order.
type PaymentRequest struct {
	OrderCode string  `json:"order_code"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
}

// LegacyTransactionRequest is the old frontend's payment shape. Some
// clients send the amount as plain "amount" instead of "amount_myr".
type LegacyTransactionRequest struct {
	OrderCode string  `json:"order_code"`
	AmountMYR float64 `json:"amount_myr"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
}

func (r LegacyTransactionRequest) amount() float64 {
	if r.AmountMYR != 0 {
		return r.AmountMYR
	}
	return r.Amount
}

func (rt *Router) recordPayment(w http.ResponseWriter, orderCode string, amount float64, method string) {
	if orderCode == "" {
		respondError(w, http.StatusBadRequest, "order_code is required")
		return
	}
	if amount <= 0 {
		respondError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if method == "" {
		method = "CASH"
	}

	payment, totals, err := rt.ledger.RecordPayment(orderCode, amount, method)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"payment": payment,
		"totals":  totals,
	})
}

func (rt *Router) createPayment(w http.ResponseWriter, req *http.Request) {
	var in PaymentRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rt.recordPayment(w, in.OrderCode, in.Amount, in.Method)
}

func (rt *Router) legacyCreateTransaction(w http.ResponseWriter, req *http.Request) {
	var in LegacyTransactionRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rt.recordPayment(w, in.OrderCode, in.amount(), in.Method)
}

// EventRequest applies a business event to an order.
type EventRequest struct {
	OrderCode string `json:"order_code"`
	Type      string `json:"type"`
}

func (rt *Router) createEvent(w http.ResponseWriter, req *http.Request) {
	var in EventRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.OrderCode == "" {
		respondError(w, http.StatusBadRequest, "order_code is required")
		return
	}

	eventType := models.EventType(strings.ToUpper(in.Type))
	switch eventType {
	case models.EventReturn, models.EventCollect,
		models.EventInstalmentCancel, models.EventBuyback:
	default:
		respondError(w, http.StatusBadRequest, "unknown event type")
		return
	}

	order, err := rt.ledger.ApplyEvent(in.OrderCode, eventType)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"order_code": order.OrderCode,
		"status":     order.Status,
	})
}
