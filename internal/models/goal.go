package models

import (
	"errors"
	"strings"

	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is a savings goal. Its saved amount is subtracted from the pool
// that is available for spending. Deleting a goal returns the saved
// amount to the pool since it simply no longer appears in the sum.
type Goal struct {
	DefaultModel
	User         User            `json:"-"`
	UserID       uuid.UUID       `json:"userId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf" gorm:"index"`
	Title        string          `json:"title" example:"New laptop"`
	TargetAmount decimal.Decimal `json:"targetAmount" example:"45000" gorm:"type:DECIMAL(20,8)"`
	SavedAmount  decimal.Decimal `json:"savedAmount" example:"5000" gorm:"type:DECIMAL(20,8)"`
	DueDate      types.Date      `json:"dueDate" example:"2026-12-31T00:00:00Z"`
}

var (
	ErrGoalTargetNotPositive = errors.New("goal target amounts must be larger than zero")
	ErrGoalSavedNegative     = errors.New("the saved amount of a goal cannot be negative")
)

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Title = strings.TrimSpace(g.Title)

	return nil
}

func (g *Goal) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(g.TargetAmount) {
		return ErrGoalTargetNotPositive
	}

	if g.SavedAmount.IsNegative() {
		return ErrGoalSavedNegative
	}

	return nil
}

// Overfunded reports whether the saved amount exceeds the target. This
// can happen when a goal's target is lowered after contributions were
// made; edits do not re-validate the saved amount.
func (g Goal) Overfunded() bool {
	return g.SavedAmount.GreaterThan(g.TargetAmount)
}
