package models

import "time"

// ScheduleType distinguishes instalment plans from open-ended rentals.
type ScheduleType string

const (
	ScheduleInstalment ScheduleType = "instalment"
	ScheduleRental     ScheduleType = "rental"
)

// ScheduleStatus tracks the lifecycle of a recurring schedule.
type ScheduleStatus string

const (
	ScheduleActive    ScheduleStatus = "active"
	SchedulePaused    ScheduleStatus = "paused"
	ScheduleCompleted ScheduleStatus = "completed"
	ScheduleCancelled ScheduleStatus = "cancelled"
)

// RecurringSchedule drives the chase list: a per-order weekly or monthly
// amount due, with a grace window before a cycle counts as late.
// TotalCycles is nil for rentals, which run until cancelled.
type RecurringSchedule struct {
	ID              string         `gorm:"size:36;primaryKey" json:"id"`
	OrderID         uint           `gorm:"index;not null" json:"order_id"`
	ScheduleType    ScheduleType   `gorm:"size:20;not null" json:"schedule_type"`
	Frequency       string         `gorm:"size:20;not null" json:"frequency"` // weekly | monthly
	Amount          float64        `gorm:"type:numeric(12,2);not null" json:"amount"`
	TotalCycles     *int           `json:"total_cycles,omitempty"`
	CyclesCompleted int            `gorm:"default:0" json:"cycles_completed"`
	NextDueDate     time.Time      `gorm:"index;not null" json:"next_due_date"`
	GraceDays       int            `gorm:"default:3" json:"grace_days"`
	Status          ScheduleStatus `gorm:"size:20;default:active" json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (RecurringSchedule) TableName() string { return "recurring_schedules" }
