package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kedaiflow/omsgo/internal/ai"
	"github.com/kedaiflow/omsgo/internal/models"
	"github.com/kedaiflow/omsgo/internal/services/ledger"
	"github.com/kedaiflow/omsgo/internal/utils"
	"gorm.io/gorm"
)

// IntakeRequest carries one pasted chat message. Older clients send the
// text under "message" and control auto-creation with a body flag.
type IntakeRequest struct {
	Text       string `json:"text"`
	Message    string `json:"message"`
	AutoCreate *bool  `json:"auto_create,omitempty"`
}

func (r IntakeRequest) text() string {
	if r.Text != "" {
		return r.Text
	}
	return r.Message
}

// IntakeResponse is the structured extraction result. MatchedOrderCode
// points at the latest order of the same phone when one exists.
type IntakeResponse struct {
	Parsed           *ai.ParsedOrder `json:"parsed"`
	Event            *ai.ParsedEvent `json:"event"`
	Duplicate        bool            `json:"duplicate"`
	MatchedOrderCode string          `json:"matched_order_code,omitempty"`
	Created          interface{}     `json:"created,omitempty"`
}

// recordMessage stores the raw text keyed by its content hash. A hash
// collision with an existing row means the exact same text was seen before.
func (rt *Router) recordMessage(text string) (bool, error) {
	hash := utils.HashText(text)

	var existing models.Message
	err := rt.db.DB.Where("sha256 = ?", hash).First(&existing).Error
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	msg := models.Message{SHA256: hash, Raw: text}
	if err := rt.db.DB.Create(&msg).Error; err != nil {
		// lost a race against a concurrent identical intake
		var again models.Message
		if rt.db.DB.Where("sha256 = ?", hash).First(&again).Error == nil {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

func orderInputFromParsed(order *ai.ParsedOrder, event *ai.ParsedEvent) ledger.CreateOrderInput {
	items := make([]ledger.NewItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, ledger.NewItem{
			Name:      it.Name,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			SKU:       it.SKU,
		})
	}
	in := ledger.CreateOrderInput{
		Code:         order.OrderID,
		CustomerName: order.Name,
		Phone:        order.Phone,
		Address:      order.Address,
		Type:         order.Type,
		Notes:        order.Notes,
		Items:        items,
	}
	if event != nil {
		in.Event = event.Type
	}
	return in
}

// extract runs the configured extractor, answering 503 when none is wired.
func (rt *Router) extract(w http.ResponseWriter, req *http.Request, text string) (*ai.ParsedOrder, *ai.ParsedEvent, bool) {
	if rt.extractor == nil {
		respondError(w, http.StatusServiceUnavailable, "intake extraction is not configured")
		return nil, nil, false
	}
	order, event, err := rt.extractor.Extract(req.Context(), text)
	if err != nil {
		respondServiceError(w, err)
		return nil, nil, false
	}
	return order, event, true
}

// parseIntake extracts a structured order from chat text without creating
// anything. Duplicate texts are flagged, not rejected.
func (rt *Router) parseIntake(w http.ResponseWriter, req *http.Request) {
	var in IntakeRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil || in.text() == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	duplicate, err := rt.recordMessage(in.text())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to record message")
		return
	}

	order, event, ok := rt.extract(w, req, in.text())
	if !ok {
		return
	}

	resp := IntakeResponse{Parsed: order, Event: event, Duplicate: duplicate}
	if order.Phone != "" {
		if matched, err := rt.ledger.LatestOrderForPhone(order.Phone); err == nil {
			resp.MatchedOrderCode = matched.OrderCode
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// legacyIntakeParse is the old combined parse-and-create endpoint.
// Creation is on by default; the auto_create body flag turns it off, and a
// create/auto_create query parameter overrides both.
func (rt *Router) legacyIntakeParse(w http.ResponseWriter, req *http.Request) {
	var in IntakeRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil || in.text() == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	duplicate, err := rt.recordMessage(in.text())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to record message")
		return
	}

	order, event, ok := rt.extract(w, req, in.text())
	if !ok {
		return
	}

	resp := IntakeResponse{Parsed: order, Event: event, Duplicate: duplicate}

	create := true
	if in.AutoCreate != nil {
		create = *in.AutoCreate
	}
	q := req.URL.Query()
	if v := q.Get("auto_create"); v != "" {
		create = v == "true"
	}
	if v := q.Get("create"); v != "" {
		create = v == "true"
	}

	if create && !duplicate {
		created, err := rt.ledger.CreateOrder(orderInputFromParsed(order, event))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		payload, err := rt.orderPayload(created)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		resp.Created = payload
		respondJSON(w, http.StatusCreated, resp)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
