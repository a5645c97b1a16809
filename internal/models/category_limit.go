package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryLimit is an advisory cap on spending in one category. It is
// display data only, expense creation is never gated on it.
type CategoryLimit struct {
	DefaultModel
	User        User            `json:"-"`
	UserID      uuid.UUID       `json:"userId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf" gorm:"uniqueIndex:limit_user_category"`
	Category    string          `json:"category" example:"Food" gorm:"uniqueIndex:limit_user_category"`
	LimitAmount decimal.Decimal `json:"limitAmount" example:"2000" gorm:"type:DECIMAL(20,8)"`
}

var (
	ErrCategoryLimitExists            = errors.New("there already is a limit for this category")
	ErrCategoryLimitAmountNotPositive = errors.New("limit amounts must be larger than zero")
)

func (l *CategoryLimit) BeforeSave(_ *gorm.DB) error {
	l.Category = strings.TrimSpace(l.Category)

	return nil
}

func (l *CategoryLimit) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(l.LimitAmount) {
		return ErrCategoryLimitAmountNotPositive
	}

	return nil
}
