package models

import (
	"errors"
	"strings"

	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringSuffix marks expenses that were materialized from a
// recurring definition by the scheduler.
const RecurringSuffix = " (Recurring)"

// Expense is a single ledger entry. Created by manual logging, by
// invoice commit or by the recurring scheduler.
type Expense struct {
	DefaultModel
	User        User            `json:"-"`
	UserID      uuid.UUID       `json:"userId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf" gorm:"index"`
	Category    string          `json:"category" example:"Food" default:"Other"`
	Amount      decimal.Decimal `json:"amount" example:"250" gorm:"type:DECIMAL(20,8)"`
	Description string          `json:"description" example:"Pizza with friends" default:""`
	Date        types.Date      `json:"date" example:"2026-08-29T00:00:00Z"`
}

var ErrExpenseAmountNotPositive = errors.New("expense amounts must be larger than zero")

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Category = strings.TrimSpace(e.Category)
	if e.Category == "" {
		e.Category = "Other"
	}

	return nil
}

func (e *Expense) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(e.Amount) {
		return ErrExpenseAmountNotPositive
	}

	return nil
}

// Recurring reports whether the expense was materialized by the
// scheduler.
func (e Expense) Recurring() bool {
	return strings.HasSuffix(e.Description, RecurringSuffix)
}
