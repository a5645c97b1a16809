package models

import (
	"errors"
	"strings"

	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Frequency is the cadence at which a recurring expense is charged.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Valid reports whether the frequency is one of the supported values.
func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly || f == FrequencyMonthly
}

// Advance returns the next due date after a materialization.
//
// Monthly advances by a fixed 30 days. This is an approximation, not
// calendar-month billing: charging on the 31st of January schedules
// the next charge for the 2nd of March.
func (f Frequency) Advance(date types.Date) types.Date {
	switch f {
	case FrequencyWeekly:
		return date.AddDays(7)
	case FrequencyMonthly:
		return date.AddDays(30)
	default:
		return date.AddDays(1)
	}
}

// RecurringStatus toggles a recurring expense between being scheduled
// and being frozen.
type RecurringStatus string

const (
	RecurringActive RecurringStatus = "active"
	RecurringPaused RecurringStatus = "paused"
)

func (s RecurringStatus) Valid() bool {
	return s == RecurringActive || s == RecurringPaused
}

// RecurringExpense is a definition that the scheduler materializes into
// expenses whenever its next due date comes around.
type RecurringExpense struct {
	DefaultModel
	User      User            `json:"-"`
	UserID    uuid.UUID       `json:"userId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf" gorm:"index"`
	Title     string          `json:"title" example:"Gym membership"`
	Amount    decimal.Decimal `json:"amount" example:"500" gorm:"type:DECIMAL(20,8)"`
	Category  string          `json:"category" example:"Personal Care" default:""`
	Frequency Frequency       `json:"frequency" example:"monthly"`
	NextDate  types.Date      `json:"nextDate" example:"2026-09-28T00:00:00Z"`
	Status    RecurringStatus `json:"status" example:"active" gorm:"default:active"`
}

var (
	ErrRecurringAmountNotPositive = errors.New("recurring expense amounts must be larger than zero")
	ErrInvalidFrequency           = errors.New("frequency must be one of daily, weekly, monthly")
	ErrInvalidRecurringStatus     = errors.New("status must be one of active, paused")
)

func (r *RecurringExpense) BeforeSave(_ *gorm.DB) error {
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)

	if !r.Frequency.Valid() {
		return ErrInvalidFrequency
	}

	if r.Status == "" {
		r.Status = RecurringActive
	}

	if !r.Status.Valid() {
		return ErrInvalidRecurringStatus
	}

	return nil
}

func (r *RecurringExpense) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(r.Amount) {
		return ErrRecurringAmountNotPositive
	}

	return nil
}
