package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/kedaiflow/omsgo/internal/models"
	"github.com/kedaiflow/omsgo/internal/services/ledger"
)

// ScheduleRequest attaches a recurring payment plan to an order.
type ScheduleRequest struct {
	OrderCode    string  `json:"order_code"`
	ScheduleType string  `json:"schedule_type"`
	Frequency    string  `json:"frequency"`
	Amount       float64 `json:"amount"`
	TotalCycles  *int    `json:"total_cycles,omitempty"`
	NextDueDate  string  `json:"next_due_date"`
	GraceDays    int     `json:"grace_days,omitempty"`
}

// parseDate accepts plain dates and full RFC 3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (rt *Router) createSchedule(w http.ResponseWriter, req *http.Request) {
	var in ScheduleRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.OrderCode == "" || in.Amount <= 0 {
		respondError(w, http.StatusBadRequest, "order_code and a positive amount are required")
		return
	}

	schedType := models.ScheduleType(strings.ToLower(in.ScheduleType))
	if schedType != models.ScheduleInstalment && schedType != models.ScheduleRental {
		respondError(w, http.StatusBadRequest, "schedule_type must be instalment or rental")
		return
	}
	freq := strings.ToLower(in.Frequency)
	if freq != "weekly" && freq != "monthly" {
		respondError(w, http.StatusBadRequest, "frequency must be weekly or monthly")
		return
	}
	due, err := parseDate(in.NextDueDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "next_due_date must be YYYY-MM-DD")
		return
	}

	sched, err := rt.ledger.CreateSchedule(ledger.ScheduleInput{
		OrderCode:    in.OrderCode,
		ScheduleType: schedType,
		Frequency:    freq,
		Amount:       in.Amount,
		TotalCycles:  in.TotalCycles,
		NextDueDate:  due,
		GraceDays:    in.GraceDays,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sched)
}

// chaseList returns due schedule cycles with ageing buckets, for the daily
// collections call sheet.
func (rt *Router) chaseList(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	asOf := time.Now().UTC()
	if raw := q.Get("as_of"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "as_of must be YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	entries, err := rt.ledger.ChaseList(
		asOf,
		models.ScheduleType(strings.ToLower(q.Get("type"))),
		q.Get("overdue_only") == "true",
	)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"as_of":   asOf.Format("2006-01-02"),
		"entries": entries,
	})
}

// listOutstanding lists orders still carrying a balance.
func (rt *Router) listOutstanding(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	rows, err := rt.ledger.Search(ledger.SearchFilter{
		Type:        strings.ToUpper(q.Get("type")),
		OverdueOnly: true,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"orders": rows})
}
