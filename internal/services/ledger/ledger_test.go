package ledger

import (
	"errors"
	"strings"
	"testing"

	"github.com/kedaiflow/omsgo/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Event{},
		&models.Product{},
		&models.ProductAlias{},
		&models.CodeSequence{},
		&models.RecurringSchedule{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createBasicOrder(t *testing.T, svc *Service) *models.Order {
	t.Helper()
	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerName: "Ali",
		Phone:        "+60123456789",
		Type:         models.OrderTypeRental,
		Items: []NewItem{
			{Name: "sofa", Qty: 2, UnitPrice: 10},
			{Name: "kipas", Qty: 1, UnitPrice: 5},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func TestCreateOrderAutoCode(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	first := createBasicOrder(t, svc)
	if first.OrderCode != "ORD000001" {
		t.Errorf("first auto code: got %s, want ORD000001", first.OrderCode)
	}
	if first.Status != models.OrderStatusConfirmed {
		t.Errorf("new order status: got %s, want CONFIRMED", first.Status)
	}

	second := createBasicOrder(t, svc)
	if second.OrderCode != "ORD000002" {
		t.Errorf("second auto code: got %s, want ORD000002", second.OrderCode)
	}
}

func TestCreateOrderExplicitCode(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	order, err := svc.CreateOrder(CreateOrderInput{
		Code:         "KEDAI-7",
		CustomerName: "Siti",
		Type:         models.OrderTypeOutright,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.OrderCode != "KEDAI-7" {
		t.Errorf("explicit code not preserved: got %s", order.OrderCode)
	}
}

func TestCreateOrderReusesCustomerByPhone(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	a := createBasicOrder(t, svc)
	b := createBasicOrder(t, svc)
	if a.CustomerID != b.CustomerID {
		t.Errorf("same phone should reuse customer: %d vs %d", a.CustomerID, b.CustomerID)
	}

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 customer, got %d", count)
	}
}

func TestCreateOrderDefaultsQtyToOne(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerName: "Ali",
		Type:         models.OrderTypeOutright,
		Items:        []NewItem{{Name: "almari", UnitPrice: 100}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	totals, items, err := svc.TotalsFor(order.ID)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if len(items) != 1 || items[0].Qty != 1 {
		t.Errorf("omitted qty should default to 1, got %+v", items)
	}
	if totals.Total != 100 {
		t.Errorf("total: got %.2f, want 100", totals.Total)
	}
}

func TestCreateOrderNormalizesPhone(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	a := createBasicOrder(t, svc)
	b, err := svc.CreateOrder(CreateOrderInput{
		CustomerName: "Ali",
		Phone:        "012-345 6789",
		Type:         models.OrderTypeRental,
		Items:        []NewItem{{Name: "kipas", Qty: 1, UnitPrice: 5}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if a.CustomerID != b.CustomerID {
		t.Errorf("formatted phone should dedupe to same customer: %d vs %d", a.CustomerID, b.CustomerID)
	}

	var cust models.Customer
	db.First(&cust, a.CustomerID)
	if cust.Phone != "+60123456789" {
		t.Errorf("stored phone %q, want canonical +60123456789", cust.Phone)
	}
}

func TestCreateOrderResolvesItems(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	db.Create(&models.Product{SKU: "SOFA-3S", Name: "3-Seater Sofa", DefaultPrice: 1500})
	db.Create(&models.ProductAlias{Alias: "sofa tiga", SKU: "SOFA-3S"})

	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerName: "Ali",
		Type:         models.OrderTypeRental,
		Items:        []NewItem{{Name: "Sofa Tiga", Qty: 1, UnitPrice: 99}},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	var items []models.OrderItem
	db.Where("order_id = ?", order.ID).Find(&items)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].SKU != "SOFA-3S" || items[0].UnitPrice != 1500 {
		t.Errorf("alias resolution not applied: %+v", items[0])
	}
}

func TestTotals(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	order := createBasicOrder(t, svc) // 2x10 + 1x5 = 25
	if _, _, err := svc.RecordPayment(order.OrderCode, 15, "CASH"); err != nil {
		t.Fatalf("record payment: %v", err)
	}

	totals, items, err := svc.TotalsFor(order.ID)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 items, got %d", len(items))
	}
	if totals.Total != 25 || totals.Paid != 15 || totals.Balance != 10 {
		t.Errorf("got total=%.2f paid=%.2f balance=%.2f, want 25/15/10",
			totals.Total, totals.Paid, totals.Balance)
	}
}

func TestRecordPaymentUnknownOrder(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	_, _, err := svc.RecordPayment("NOPE", 10, "CASH")
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	var count int64
	db.Model(&models.Payment{}).Count(&count)
	if count != 0 {
		t.Errorf("payment row created for unknown order")
	}
}

func TestApplyEventStatusMapping(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	cases := []struct {
		event models.EventType
		want  models.OrderStatus
	}{
		{models.EventReturn, models.OrderStatusReturned},
		{models.EventCollect, models.OrderStatusReturned},
		{models.EventInstalmentCancel, models.OrderStatusCancelled},
		{models.EventBuyback, models.OrderStatusCancelled},
	}

	for _, tc := range cases {
		order := createBasicOrder(t, svc)
		updated, err := svc.ApplyEvent(order.OrderCode, tc.event)
		if err != nil {
			t.Fatalf("apply %s: %v", tc.event, err)
		}
		if updated.Status != tc.want {
			t.Errorf("%s: got status %s, want %s", tc.event, updated.Status, tc.want)
		}
	}
}

func TestApplyEventLeavesItemsAndPayments(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	order := createBasicOrder(t, svc)
	svc.RecordPayment(order.OrderCode, 5, "CASH")

	if _, err := svc.ApplyEvent(order.OrderCode, models.EventBuyback); err != nil {
		t.Fatalf("apply event: %v", err)
	}

	totals, items, _ := svc.TotalsFor(order.ID)
	if len(items) != 2 || totals.Paid != 5 {
		t.Errorf("event touched items/payments: items=%d paid=%.2f", len(items), totals.Paid)
	}
}

func TestApplyEventTerminalReapplyIsSafe(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	order := createBasicOrder(t, svc)
	svc.ApplyEvent(order.OrderCode, models.EventReturn)

	// Re-applying RETURN on an already-RETURNED order stays RETURNED.
	updated, err := svc.ApplyEvent(order.OrderCode, models.EventReturn)
	if err != nil {
		t.Fatalf("re-apply: %v", err)
	}
	if updated.Status != models.OrderStatusReturned {
		t.Errorf("got %s, want RETURNED", updated.Status)
	}

	var count int64
	db.Model(&models.Event{}).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 event rows, got %d", count)
	}
}

func TestSearch(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	order := createBasicOrder(t, svc)
	svc.ApplyEvent(order.OrderCode, models.EventReturn)
	svc.CreateOrder(CreateOrderInput{
		CustomerName: "Mutu",
		Phone:        "+60199999999",
		Type:         models.OrderTypeInstalment,
		Items:        []NewItem{{Name: "tv", Qty: 1, UnitPrice: 900}},
	})

	byStatus, err := svc.Search(SearchFilter{Status: "RETURNED"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].OrderCode != order.OrderCode {
		t.Errorf("status filter: got %+v", byStatus)
	}

	byQuery, err := svc.Search(SearchFilter{Query: "mutu"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byQuery) != 1 || byQuery[0].Customer != "Mutu" {
		t.Errorf("substring filter: got %+v", byQuery)
	}

	byPhone, err := svc.Search(SearchFilter{Query: "99999"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byPhone) != 1 {
		t.Errorf("phone substring filter: got %+v", byPhone)
	}

	byType, err := svc.Search(SearchFilter{Type: "INSTALMENT"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byType) != 1 || byType[0].Type != models.OrderTypeInstalment {
		t.Errorf("type filter: got %+v", byType)
	}
}

func TestSearchOverdueOnly(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	settled := createBasicOrder(t, svc)
	svc.RecordPayment(settled.OrderCode, 25, "CASH")
	owing := svc
	owingOrder, _ := owing.CreateOrder(CreateOrderInput{
		CustomerName: "Mutu",
		Phone:        "+60199999999",
		Type:         models.OrderTypeRental,
		Items:        []NewItem{{Name: "tv", Qty: 1, UnitPrice: 900}},
	})

	rows, err := svc.Search(SearchFilter{OverdueOnly: true})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 1 || rows[0].OrderCode != owingOrder.OrderCode {
		t.Errorf("overdue filter: got %+v", rows)
	}
	if rows[0].Balance != 900 {
		t.Errorf("balance: got %.2f, want 900", rows[0].Balance)
	}
}

func TestUpdateOrderPatchesFields(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	order := createBasicOrder(t, svc)
	notes := "deliver after 6pm"
	name := "Ali bin Abu"
	updated, err := svc.UpdateOrder(order.OrderCode, OrderPatch{Notes: &notes, Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Notes != notes {
		t.Errorf("notes: got %q", updated.Notes)
	}
	if updated.Customer == nil || updated.Customer.Name != name {
		t.Errorf("customer name not patched: %+v", updated.Customer)
	}
}

func TestLatestOrderForPhone(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	createBasicOrder(t, svc)
	second := createBasicOrder(t, svc)

	match, err := svc.LatestOrderForPhone("+60123456789")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if match.OrderCode != second.OrderCode {
		t.Errorf("got %s, want latest %s", match.OrderCode, second.OrderCode)
	}

	if _, err := svc.LatestOrderForPhone("+60100000000"); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound for unseen phone, got %v", err)
	}
}

func TestAutoCodeFormat(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	order := createBasicOrder(t, svc)
	if !strings.HasPrefix(order.OrderCode, "ORD") || len(order.OrderCode) != 9 {
		t.Errorf("auto code %q does not match ORD%%06d", order.OrderCode)
	}
}
