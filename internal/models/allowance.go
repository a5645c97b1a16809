package models

import (
	"errors"

	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Allowance is money added to the user's pool. Entries are append-only,
// they are never updated or deleted.
type Allowance struct {
	DefaultModel
	User   User            `json:"-"`
	UserID uuid.UUID       `json:"userId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf" gorm:"index"`
	Amount decimal.Decimal `json:"amount" example:"1000" gorm:"type:DECIMAL(20,8)"`
	Date   types.Date      `json:"date" example:"2026-08-29T00:00:00Z"`
}

var ErrAllowanceAmountNotPositive = errors.New("allowance amounts must be larger than zero")

func (a *Allowance) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(a.Amount) {
		return ErrAllowanceAmountNotPositive
	}

	return nil
}
