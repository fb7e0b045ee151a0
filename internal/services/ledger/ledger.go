package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/kedaiflow/omsgo/internal/models"
	"github.com/kedaiflow/omsgo/internal/services/catalog"
	"github.com/kedaiflow/omsgo/internal/utils"
	"gorm.io/gorm"
)

// ErrOrderNotFound is returned when an order code resolves to nothing.
var ErrOrderNotFound = errors.New("order not found")

const orderCodeSequence = "order_code"

// Service owns order creation, payments, events and balance computation.
// Totals are never cached: every read recomputes from item and payment rows.
type Service struct {
	db *gorm.DB
}

// NewService creates a ledger service on the given database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Totals is the running balance of one order.
type Totals struct {
	Total   float64 `json:"total"`
	Paid    float64 `json:"paid"`
	Balance float64 `json:"balance"`
}

// NewItem is one requested line item, resolved against the catalog before
// persisting. A zero Qty means the caller left it out and defaults to 1.
type NewItem struct {
	Name      string
	Qty       int
	UnitPrice float64
	SKU       string
}

// CreateOrderInput carries everything needed to open an order. Code is
// optional: when empty a sequential ORDxxxxxx code is reserved atomically.
type CreateOrderInput struct {
	Code         string
	CustomerName string
	Phone        string
	Address      string
	Type         models.OrderType
	Notes        string
	Items        []NewItem
	Event        models.EventType // optional; NONE or empty means no event
}

// CreateOrder persists the order header and its items in one transaction.
// The customer is looked up by phone first (soft dedup) and created on a
// miss. New orders start CONFIRMED.
func (s *Service) CreateOrder(in CreateOrderInput) (*models.Order, error) {
	var created models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		cust, err := findOrCreateCustomer(tx, in.CustomerName, in.Phone, in.Address)
		if err != nil {
			return err
		}

		code := in.Code
		if code == "" {
			code, err = nextOrderCode(tx)
			if err != nil {
				return err
			}
		}

		order := models.Order{
			OrderCode:  code,
			CustomerID: cust.ID,
			Type:       in.Type,
			Status:     models.OrderStatusConfirmed,
			Notes:      in.Notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		resolver := catalog.NewService(tx)
		for _, it := range in.Items {
			qty := it.Qty
			if qty == 0 {
				qty = 1
			}
			sku, price, name := resolver.Resolve(it.Name, it.SKU, it.UnitPrice)
			item := models.OrderItem{
				OrderID:   order.ID,
				SKU:       sku,
				Name:      name,
				Qty:       qty,
				UnitPrice: price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("create item: %w", err)
			}
		}

		if in.Event != "" && in.Event != models.EventNone {
			if err := applyEventTx(tx, &order, in.Event); err != nil {
				return err
			}
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// findOrCreateCustomer deduplicates by canonical phone when one is present.
// This is lookup-before-insert with no DB constraint, so concurrent creates
// can still produce twins.
func findOrCreateCustomer(tx *gorm.DB, name, phone, address string) (*models.Customer, error) {
	phone = utils.NormalizePhone(phone)
	if phone != "" {
		var cust models.Customer
		err := tx.Where("phone = ?", phone).First(&cust).Error
		if err == nil {
			return &cust, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer lookup: %w", err)
		}
	}

	cust := models.Customer{Name: name, Phone: phone, Address: address}
	if err := tx.Create(&cust).Error; err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return &cust, nil
}

// nextOrderCode reserves the next sequential code with a single atomic
// UPDATE on the sequence row. The row lock is held until the surrounding
// transaction commits, so concurrent creations cannot collide.
func nextOrderCode(tx *gorm.DB) (string, error) {
	seq := models.CodeSequence{Name: orderCodeSequence}
	if err := tx.FirstOrCreate(&seq, models.CodeSequence{Name: orderCodeSequence}).Error; err != nil {
		return "", fmt.Errorf("sequence init: %w", err)
	}

	if err := tx.Model(&models.CodeSequence{}).
		Where("name = ?", orderCodeSequence).
		Update("value", gorm.Expr("value + 1")).Error; err != nil {
		return "", fmt.Errorf("sequence bump: %w", err)
	}

	if err := tx.First(&seq, "name = ?", orderCodeSequence).Error; err != nil {
		return "", fmt.Errorf("sequence read: %w", err)
	}

	return fmt.Sprintf("ORD%06d", seq.Value), nil
}

// GetByCode fetches one order with its customer.
func (s *Service) GetByCode(code string) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Customer").Where("order_code = ?", code).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("order lookup: %w", err)
	}
	return &order, nil
}

// TotalsFor recomputes total, paid and balance from source rows.
func (s *Service) TotalsFor(orderID uint) (Totals, []models.OrderItem, error) {
	var items []models.OrderItem
	if err := s.db.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return Totals{}, nil, fmt.Errorf("load items: %w", err)
	}

	var total float64
	for _, it := range items {
		total += float64(it.Qty) * it.UnitPrice
	}

	var paid float64
	err := s.db.Model(&models.Payment{}).
		Where("order_id = ?", orderID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paid).Error
	if err != nil {
		return Totals{}, nil, fmt.Errorf("sum payments: %w", err)
	}

	return Totals{Total: total, Paid: paid, Balance: total - paid}, items, nil
}

// RecordPayment appends a payment row and returns the fresh totals.
func (s *Service) RecordPayment(orderCode string, amount float64, method string) (*models.Payment, Totals, error) {
	order, err := s.GetByCode(orderCode)
	if err != nil {
		return nil, Totals{}, err
	}

	payment := models.Payment{OrderID: order.ID, Amount: amount, Method: method}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, Totals{}, fmt.Errorf("create payment: %w", err)
	}

	totals, _, err := s.TotalsFor(order.ID)
	if err != nil {
		return nil, Totals{}, err
	}
	return &payment, totals, nil
}

// ApplyEvent appends an event row and forces the mapped status, if any.
// Unmapped event types leave the status untouched, and re-applying a
// terminal event is allowed (no transition validation, kept no-op-safe).
func (s *Service) ApplyEvent(orderCode string, eventType models.EventType) (*models.Order, error) {
	order, err := s.GetByCode(orderCode)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return applyEventTx(tx, order, eventType)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func applyEventTx(tx *gorm.DB, order *models.Order, eventType models.EventType) error {
	ev := models.Event{OrderID: &order.ID, Type: eventType}
	if err := tx.Create(&ev).Error; err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	if status, ok := models.StatusForEvent(eventType); ok {
		order.Status = status
		if err := tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("status", status).Error; err != nil {
			return fmt.Errorf("update status: %w", err)
		}
	}
	return nil
}

// PaymentsFor returns the payment trail of an order.
func (s *Service) PaymentsFor(orderID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.Where("order_id = ?", orderID).Order("id").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	return payments, nil
}

// LatestOrderForPhone finds the most recent order of the customer carrying
// this phone, used at intake to surface a probable match.
func (s *Service) LatestOrderForPhone(phone string) (*models.Order, error) {
	var order models.Order
	err := s.db.
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("customers.phone = ?", utils.NormalizePhone(phone)).
		Order("orders.id DESC").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("order lookup: %w", err)
	}
	return &order, nil
}

// OrderPatch carries the mutable order and customer fields.
type OrderPatch struct {
	Status  *models.OrderStatus
	Notes   *string
	Name    *string
	Phone   *string
	Address *string
}

// UpdateOrder patches order status/notes and the customer's contact fields.
func (s *Service) UpdateOrder(orderCode string, patch OrderPatch) (*models.Order, error) {
	order, err := s.GetByCode(orderCode)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		orderUpdates := map[string]interface{}{}
		if patch.Status != nil {
			orderUpdates["status"] = *patch.Status
		}
		if patch.Notes != nil {
			orderUpdates["notes"] = *patch.Notes
		}
		if len(orderUpdates) > 0 {
			if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(orderUpdates).Error; err != nil {
				return fmt.Errorf("update order: %w", err)
			}
		}

		custUpdates := map[string]interface{}{}
		if patch.Name != nil {
			custUpdates["name"] = *patch.Name
		}
		if patch.Phone != nil {
			custUpdates["phone"] = utils.NormalizePhone(*patch.Phone)
		}
		if patch.Address != nil {
			custUpdates["address"] = *patch.Address
		}
		if len(custUpdates) > 0 {
			if err := tx.Model(&models.Customer{}).Where("id = ?", order.CustomerID).Updates(custUpdates).Error; err != nil {
				return fmt.Errorf("update customer: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByCode(orderCode)
}

// SearchFilter narrows the order listing. Query matches order code,
// customer name and phone as a case-insensitive substring.
type SearchFilter struct {
	Query       string
	Status      string
	Type        string
	OverdueOnly bool
	Limit       int
}

// Summary is one row of the order listing, with recomputed balances.
type Summary struct {
	OrderCode string             `json:"order_code"`
	Type      models.OrderType   `json:"type"`
	Status    models.OrderStatus `json:"status"`
	Customer  string             `json:"customer"`
	Phone     string             `json:"phone,omitempty"`
	Total     float64            `json:"total"`
	Paid      float64            `json:"paid"`
	Balance   float64            `json:"balance"`
	CreatedAt time.Time          `json:"created_at"`
}

// Search lists orders newest-first with their running balances.
func (s *Service) Search(f SearchFilter) ([]Summary, error) {
	q := s.db.Model(&models.Order{}).
		Preload("Customer").
		Joins("JOIN customers ON customers.id = orders.customer_id")

	if f.Status != "" {
		q = q.Where("orders.status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("orders.type = ?", f.Type)
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where(
			"LOWER(orders.order_code) LIKE LOWER(?) OR LOWER(customers.name) LIKE LOWER(?) OR LOWER(customers.phone) LIKE LOWER(?)",
			like, like, like,
		)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var orders []models.Order
	if err := q.Order("orders.id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}

	out := make([]Summary, 0, len(orders))
	for _, o := range orders {
		totals, _, err := s.TotalsFor(o.ID)
		if err != nil {
			return nil, err
		}
		if f.OverdueOnly && totals.Balance <= 0 {
			continue
		}
		sum := Summary{
			OrderCode: o.OrderCode,
			Type:      o.Type,
			Status:    o.Status,
			Total:     totals.Total,
			Paid:      totals.Paid,
			Balance:   totals.Balance,
			CreatedAt: o.CreatedAt,
		}
		if o.Customer != nil {
			sum.Customer = o.Customer.Name
			sum.Phone = o.Customer.Phone
		}
		out = append(out, sum)
	}
	return out, nil
}
