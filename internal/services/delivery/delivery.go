package delivery

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kedaiflow/omsgo/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrDeliveryNotFound is returned when a delivery id resolves to nothing.
var ErrDeliveryNotFound = errors.New("delivery not found")

// Service schedules deliveries/collections for orders and keeps their
// append-only event trail.
type Service struct {
	db *gorm.DB
}

// NewService creates a delivery service on the given database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Input describes a new delivery, collection or service visit.
type Input struct {
	OrderID        uint
	Kind           models.DeliveryKind
	ScheduledFor   time.Time
	RecipientName  string
	RecipientPhone string
	DropoffAddress string
}

// Schedule creates a delivery in scheduled state and records the first
// trail event.
func (s *Service) Schedule(in Input) (*models.Delivery, error) {
	kind := in.Kind
	if kind == "" {
		kind = models.DeliveryOutbound
	}

	d := models.Delivery{
		ID:             uuid.NewString(),
		OrderID:        in.OrderID,
		Kind:           kind,
		Status:         models.DeliveryScheduled,
		ScheduledFor:   in.ScheduledFor,
		RecipientName:  in.RecipientName,
		RecipientPhone: in.RecipientPhone,
		DropoffAddress: in.DropoffAddress,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&d).Error; err != nil {
			return fmt.Errorf("create delivery: %w", err)
		}
		return appendEvent(tx, d.ID, "scheduled", map[string]interface{}{
			"scheduled_for": in.ScheduledFor,
		})
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListForOrder returns all deliveries of one order, newest first.
func (s *Service) ListForOrder(orderID uint) ([]models.Delivery, error) {
	var out []models.Delivery
	if err := s.db.Where("order_id = ?", orderID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	return out, nil
}

// UpdateStatus records what the driver reported. Transitions are not
// validated; the trail in delivery_events is the source of truth for what
// actually happened.
func (s *Service) UpdateStatus(id string, status models.DeliveryStatus, meta map[string]interface{}) (*models.Delivery, error) {
	var d models.Delivery
	if err := s.db.First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("delivery lookup: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Delivery{}).Where("id = ?", id).Update("status", status).Error; err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		return appendEvent(tx, id, string(status), meta)
	})
	if err != nil {
		return nil, err
	}

	d.Status = status
	return &d, nil
}

// Events returns the trail of one delivery in order of occurrence.
func (s *Service) Events(deliveryID string) ([]models.DeliveryEvent, error) {
	var out []models.DeliveryEvent
	if err := s.db.Where("delivery_id = ?", deliveryID).Order("at ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list delivery events: %w", err)
	}
	return out, nil
}

func appendEvent(tx *gorm.DB, deliveryID, event string, meta map[string]interface{}) error {
	var payload datatypes.JSON
	if len(meta) > 0 {
		raw, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("encode event meta: %w", err)
		}
		payload = datatypes.JSON(raw)
	}

	ev := models.DeliveryEvent{
		ID:         uuid.NewString(),
		DeliveryID: deliveryID,
		Event:      event,
		At:         time.Now().UTC(),
		Meta:       payload,
	}
	if err := tx.Create(&ev).Error; err != nil {
		return fmt.Errorf("create delivery event: %w", err)
	}
	return nil
}
