package handlers

import (
	"net/http"
	"testing"

	"github.com/kedaiflow/omsgo/internal/models"
)

func seedOrderViaAPI(t *testing.T, rt *Router) {
	t.Helper()
	rec := doJSON(t, rt, "POST", "/api/orders", LegacyOrderRequest{
		CustomerName:         "Ali",
		CustomerPhonePrimary: "0123456789",
		OrderType:            "RENTAL",
		LineItems:            []LegacyLineItem{{Description: "Fan", Qty: 1, UnitPriceMYR: 50}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed order status = %d", rec.Code)
	}
}

func TestDeliveryLifecycle(t *testing.T) {
	rt := newTestRouter(t, nil)
	seedOrderViaAPI(t, rt)

	rec := doJSON(t, rt, "POST", "/api/deliveries", DeliveryRequest{
		OrderCode:      "ORD000001",
		ScheduledFor:   "2025-09-05",
		RecipientName:  "Ali",
		DropoffAddress: "12 Jalan Besar, KL",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create delivery status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created models.Delivery
	decodeBody(t, rec, &created)
	if created.Kind != models.DeliveryOutbound {
		t.Errorf("kind = %q, want delivery default", created.Kind)
	}
	if created.Status != models.DeliveryScheduled {
		t.Errorf("status = %q, want scheduled", created.Status)
	}

	rec = doJSON(t, rt, "POST", "/api/deliveries/"+created.ID+"/status", DeliveryStatusRequest{
		Status: "delivered",
		Meta:   map[string]interface{}{"pod": "signed"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updated models.Delivery
	decodeBody(t, rec, &updated)
	if updated.Status != models.DeliveryDelivered {
		t.Errorf("status = %q, want delivered", updated.Status)
	}

	rec = doJSON(t, rt, "GET", "/api/deliveries?order_code=ORD000001", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listing struct {
		Deliveries []models.Delivery `json:"deliveries"`
	}
	decodeBody(t, rec, &listing)
	if len(listing.Deliveries) != 1 {
		t.Errorf("listed %d deliveries, want 1", len(listing.Deliveries))
	}
}

func TestDeliveryValidation(t *testing.T) {
	rt := newTestRouter(t, nil)
	seedOrderViaAPI(t, rt)

	rec := doJSON(t, rt, "POST", "/api/deliveries", DeliveryRequest{
		OrderCode:    "ORD999999",
		ScheduledFor: "2025-09-05",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown order status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, rt, "POST", "/api/deliveries", DeliveryRequest{
		OrderCode:    "ORD000001",
		ScheduledFor: "2025-09-05",
		Kind:         "teleport",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad kind status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, rt, "POST", "/api/deliveries/no-such-id/status", DeliveryStatusRequest{Status: "delivered"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown delivery status = %d, want 404", rec.Code)
	}
}

func TestScheduleAndChaseListEndpoints(t *testing.T) {
	rt := newTestRouter(t, nil)
	seedOrderViaAPI(t, rt)

	rec := doJSON(t, rt, "POST", "/api/schedules", ScheduleRequest{
		OrderCode:    "ORD000001",
		ScheduleType: "rental",
		Frequency:    "monthly",
		Amount:       100,
		NextDueDate:  "2025-08-01",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create schedule status = %d, body %s", rec.Code, rec.Body.String())
	}
	var sched models.RecurringSchedule
	decodeBody(t, rec, &sched)
	if sched.GraceDays != 3 {
		t.Errorf("grace days = %d, want 3 default", sched.GraceDays)
	}

	rec = doJSON(t, rt, "GET", "/api/chase-list?as_of=2025-09-01", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("chase list status = %d, body %s", rec.Code, rec.Body.String())
	}
	var chase struct {
		Entries []struct {
			OrderCode   string  `json:"order_code"`
			Outstanding float64 `json:"outstanding"`
			Bucket      string  `json:"bucket"`
		} `json:"entries"`
	}
	decodeBody(t, rec, &chase)
	if len(chase.Entries) != 1 {
		t.Fatalf("chase entries = %d, want 1", len(chase.Entries))
	}
	if chase.Entries[0].OrderCode != "ORD000001" {
		t.Errorf("chase order = %q", chase.Entries[0].OrderCode)
	}

	rec = doJSON(t, rt, "POST", "/api/schedules", ScheduleRequest{
		OrderCode:    "ORD000001",
		ScheduleType: "hourly",
		Frequency:    "monthly",
		Amount:       100,
		NextDueDate:  "2025-08-01",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad schedule type status = %d, want 400", rec.Code)
	}
}

func TestOutstandingEndpoint(t *testing.T) {
	rt := newTestRouter(t, nil)
	seedOrderViaAPI(t, rt)

	rec := doJSON(t, rt, "GET", "/api/outstanding", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("outstanding status = %d", rec.Code)
	}
	var out struct {
		Orders []struct {
			OrderCode string  `json:"order_code"`
			Balance   float64 `json:"balance"`
		} `json:"orders"`
	}
	decodeBody(t, rec, &out)
	if len(out.Orders) != 1 {
		t.Fatalf("outstanding orders = %d, want 1", len(out.Orders))
	}
	if out.Orders[0].Balance != 50 {
		t.Errorf("balance = %v, want 50", out.Orders[0].Balance)
	}

	// settle the order; it drops off the outstanding list
	doJSON(t, rt, "POST", "/payments", PaymentRequest{OrderCode: "ORD000001", Amount: 50})
	rec = doJSON(t, rt, "GET", "/api/outstanding", nil)
	decodeBody(t, rec, &out)
	if len(out.Orders) != 0 {
		t.Errorf("outstanding after settle = %d, want 0", len(out.Orders))
	}
}
