package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kedaiflow/omsgo/internal/models"
)

// ScheduleInput describes a recurring payment plan for an order.
type ScheduleInput struct {
	OrderCode    string
	ScheduleType models.ScheduleType
	Frequency    string // weekly | monthly
	Amount       float64
	TotalCycles  *int
	NextDueDate  time.Time
	GraceDays    int
}

// CreateSchedule attaches a recurring schedule to an order.
func (s *Service) CreateSchedule(in ScheduleInput) (*models.RecurringSchedule, error) {
	order, err := s.GetByCode(in.OrderCode)
	if err != nil {
		return nil, err
	}

	grace := in.GraceDays
	if grace == 0 {
		grace = 3
	}

	sched := models.RecurringSchedule{
		ID:           uuid.NewString(),
		OrderID:      order.ID,
		ScheduleType: in.ScheduleType,
		Frequency:    in.Frequency,
		Amount:       in.Amount,
		TotalCycles:  in.TotalCycles,
		NextDueDate:  in.NextDueDate,
		GraceDays:    grace,
		Status:       models.ScheduleActive,
	}
	if err := s.db.Create(&sched).Error; err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	return &sched, nil
}

// ChaseEntry is one overdue (or due) schedule cycle with its ageing bucket.
type ChaseEntry struct {
	OrderCode    string              `json:"order_code"`
	ScheduleID   string              `json:"schedule_id"`
	ScheduleType models.ScheduleType `json:"schedule_type"`
	Frequency    string              `json:"frequency"`
	Amount       float64             `json:"amount"`
	DueDate      time.Time           `json:"due_date"`
	CustomerName string              `json:"customer_name"`
	Phone        string              `json:"phone,omitempty"`
	Outstanding  float64             `json:"outstanding"`
	DaysLate     int                 `json:"days_late"`
	Bucket       string              `json:"bucket"`
}

// ChaseList returns active schedules due on or before asOf, with the amount
// still outstanding for the current cycle and an ageing bucket. Payments
// made within the cycle window count toward the cycle; outstanding never
// goes negative.
func (s *Service) ChaseList(asOf time.Time, scheduleType models.ScheduleType, overdueOnly bool) ([]ChaseEntry, error) {
	q := s.db.Where("status = ? AND next_due_date <= ?", models.ScheduleActive, asOf)
	if scheduleType != "" {
		q = q.Where("schedule_type = ?", scheduleType)
	}

	var schedules []models.RecurringSchedule
	if err := q.Order("next_due_date ASC").Find(&schedules).Error; err != nil {
		return nil, fmt.Errorf("load schedules: %w", err)
	}

	out := make([]ChaseEntry, 0, len(schedules))
	for _, sched := range schedules {
		var order models.Order
		if err := s.db.Preload("Customer").First(&order, sched.OrderID).Error; err != nil {
			return nil, fmt.Errorf("load order %d: %w", sched.OrderID, err)
		}

		cycleDays := 30
		if sched.Frequency == "weekly" {
			cycleDays = 7
		}
		cycleStart := sched.NextDueDate.AddDate(0, 0, -cycleDays)

		var paid float64
		err := s.db.Model(&models.Payment{}).
			Where("order_id = ? AND created_at >= ? AND created_at < ?",
				sched.OrderID, cycleStart, asOf.AddDate(0, 0, 1)).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&paid).Error
		if err != nil {
			return nil, fmt.Errorf("sum cycle payments: %w", err)
		}

		outstanding := sched.Amount - paid
		if outstanding < 0 {
			outstanding = 0
		}

		daysLate := int(asOf.Sub(sched.NextDueDate).Hours()/24) - sched.GraceDays
		bucket := "current"
		switch {
		case daysLate > 30:
			bucket = ">30"
		case daysLate >= 8:
			bucket = "8-30"
		case daysLate > 0:
			bucket = "1-7"
		}
		if daysLate < 0 {
			daysLate = 0
		}

		if overdueOnly && outstanding == 0 {
			continue
		}

		entry := ChaseEntry{
			OrderCode:    order.OrderCode,
			ScheduleID:   sched.ID,
			ScheduleType: sched.ScheduleType,
			Frequency:    sched.Frequency,
			Amount:       sched.Amount,
			DueDate:      sched.NextDueDate,
			Outstanding:  outstanding,
			DaysLate:     daysLate,
			Bucket:       bucket,
		}
		if order.Customer != nil {
			entry.CustomerName = order.Customer.Name
			entry.Phone = order.Customer.Phone
		}
		out = append(out, entry)
	}
	return out, nil
}
