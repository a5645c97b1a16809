// Package ledger implements the reconciliation rules of the budget
// tracker: the balance equation over allowances, expenses and goal
// savings, the recurring expense scheduler and the bounds for goal
// contributions.
package ledger

import (
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Summary contains the derived totals for one user. None of the fields
// are stored anywhere, they are recomputed from the source rows on
// every read.
type Summary struct {
	TotalAllowance     decimal.Decimal `json:"totalAllowance" example:"1000"`    // Sum of all allowance entries
	TotalExpenses      decimal.Decimal `json:"totalExpenses" example:"150"`      // Sum of all expense entries
	TotalSaved         decimal.Decimal `json:"totalSaved" example:"200"`         // Sum of the saved amounts of all goals
	DisplayedAllowance decimal.Decimal `json:"displayedAllowance" example:"800"` // The pool visible for spending and goal funding
	RemainingBalance   decimal.Decimal `json:"remainingBalance" example:"650"`   // Displayed allowance minus expenses
	SpentPercentage    decimal.Decimal `json:"spentPercentage" example:"15"`     // Expenses as a percentage of the raw allowance
	SafeDailyLimit     decimal.Decimal `json:"safeDailyLimit" example:"21.67"`   // Remaining balance spread over 30 days
}

// Summarize computes the summary for a user. All sums are taken within
// one transaction so that they form a consistent snapshot.
func Summarize(db *gorm.DB, userID uuid.UUID) (Summary, error) {
	var summary Summary

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		summary, err = summarize(tx, userID)
		return err
	})
	if err != nil {
		return Summary{}, err
	}

	return summary, nil
}

// summarize computes the summary using the transaction handle of the
// caller. Mutations reuse it so that their validation reads and their
// writes happen atomically.
func summarize(tx *gorm.DB, userID uuid.UUID) (Summary, error) {
	totalAllowance, err := sumColumn(tx, &models.Allowance{}, "amount", userID)
	if err != nil {
		return Summary{}, err
	}

	totalExpenses, err := sumColumn(tx, &models.Expense{}, "amount", userID)
	if err != nil {
		return Summary{}, err
	}

	totalSaved, err := sumColumn(tx, &models.Goal{}, "saved_amount", userID)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		TotalAllowance:     totalAllowance,
		TotalExpenses:      totalExpenses,
		TotalSaved:         totalSaved,
		DisplayedAllowance: totalAllowance.Sub(totalSaved),
	}
	summary.RemainingBalance = summary.DisplayedAllowance.Sub(totalExpenses)

	if totalAllowance.IsPositive() {
		summary.SpentPercentage = totalExpenses.Div(totalAllowance).Mul(decimal.NewFromInt(100)).Round(2)
	}

	if summary.RemainingBalance.IsPositive() {
		summary.SafeDailyLimit = summary.RemainingBalance.Div(decimal.NewFromInt(30)).Round(2)
	}

	return summary, nil
}

// sumColumn sums one column over all rows of the user. Zero rows sum
// to zero, never to an error.
func sumColumn(tx *gorm.DB, model any, column string, userID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal

	err := tx.Model(model).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(" + column + "), 0)").
		Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return sum, nil
}
