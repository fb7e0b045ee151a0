package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/kedaiflow/omsgo/internal/models"
	"github.com/kedaiflow/omsgo/internal/services/delivery"
)

// DeliveryRequest schedules a delivery, collection or service visit.
type DeliveryRequest struct {
	OrderCode      string `json:"order_code"`
	Kind           string `json:"kind,omitempty"`
	ScheduledFor   string `json:"scheduled_for"`
	RecipientName  string `json:"recipient_name,omitempty"`
	RecipientPhone string `json:"recipient_phone,omitempty"`
	DropoffAddress string `json:"dropoff_address,omitempty"`
}

func (rt *Router) createDelivery(w http.ResponseWriter, req *http.Request) {
	var in DeliveryRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.OrderCode == "" {
		respondError(w, http.StatusBadRequest, "order_code is required")
		return
	}
	scheduledFor, err := parseDate(in.ScheduledFor)
	if err != nil {
		respondError(w, http.StatusBadRequest, "scheduled_for must be YYYY-MM-DD")
		return
	}

	kind := models.DeliveryKind(strings.ToLower(in.Kind))
	switch kind {
	case "", models.DeliveryOutbound, models.DeliveryCollection, models.DeliveryService:
	default:
		respondError(w, http.StatusBadRequest, "kind must be delivery, collection or service")
		return
	}

	order, err := rt.ledger.GetByCode(in.OrderCode)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	d, err := rt.deliveries.Schedule(delivery.Input{
		OrderID:        order.ID,
		Kind:           kind,
		ScheduledFor:   scheduledFor,
		RecipientName:  in.RecipientName,
		RecipientPhone: in.RecipientPhone,
		DropoffAddress: in.DropoffAddress,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, d)
}

// listDeliveries lists the deliveries of one order, given by order_code.
func (rt *Router) listDeliveries(w http.ResponseWriter, req *http.Request) {
	code := req.URL.Query().Get("order_code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "order_code is required")
		return
	}

	order, err := rt.ledger.GetByCode(code)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	rows, err := rt.deliveries.ListForOrder(order.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deliveries": rows})
}

// DeliveryStatusRequest reports what happened to a delivery. Meta is free
// form and lands on the trail event unchanged.
type DeliveryStatusRequest struct {
	Status string                 `json:"status"`
	Meta   map[string]interface{} `json:"meta,omitempty"`
}

func (rt *Router) updateDeliveryStatus(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var in DeliveryStatusRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status := models.DeliveryStatus(strings.ToLower(in.Status))
	switch status {
	case models.DeliveryScheduled, models.DeliveryAssigned, models.DeliveryEnroute,
		models.DeliveryDelivered, models.DeliveryReturned,
		models.DeliveryFailed, models.DeliveryCancelled:
	default:
		respondError(w, http.StatusBadRequest, "unknown delivery status")
		return
	}

	d, err := rt.deliveries.UpdateStatus(id, status, in.Meta)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}
