package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceDraft holds the line items extracted from a scanned receipt
// while the user reviews them. A draft lives until it is committed into
// expenses or cancelled, it never affects the balance on its own.
type InvoiceDraft struct {
	DefaultModel
	User   User               `json:"-"`
	UserID uuid.UUID          `json:"userId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf" gorm:"index"`
	Items  []InvoiceDraftItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
}

// InvoiceDraftItem is one candidate expense extracted from OCR text.
type InvoiceDraftItem struct {
	DefaultModel
	InvoiceDraftID uuid.UUID       `json:"invoiceDraftId" example:"65392deb-5e92-4268-b114-297faad6cdce" gorm:"index"`
	Name           string          `json:"name" example:"Pizza"`
	Amount         decimal.Decimal `json:"amount" example:"250" gorm:"type:DECIMAL(20,8)"`
	Category       string          `json:"category" example:"Food"`
}
