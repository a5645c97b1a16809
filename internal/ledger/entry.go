package ledger

import (
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AddAllowance records money added to the user's pool, dated today.
func AddAllowance(db *gorm.DB, userID uuid.UUID, amount decimal.Decimal) (models.Allowance, error) {
	if !amount.IsPositive() {
		return models.Allowance{}, ErrAmountNotPositive
	}

	defer lockUser(userID)()

	allowance := models.Allowance{
		UserID: userID,
		Amount: amount,
		Date:   types.Today(),
	}

	err := db.Create(&allowance).Error
	if err != nil {
		return models.Allowance{}, err
	}

	return allowance, nil
}

// RecordExpense validates an expense against the remaining balance and
// inserts it. The check and the write share one transaction under the
// user's lock, so two concurrent submissions cannot both spend the
// same money.
func RecordExpense(db *gorm.DB, userID uuid.UUID, category string, amount decimal.Decimal, description string, date types.Date) (models.Expense, error) {
	if !amount.IsPositive() {
		return models.Expense{}, ErrAmountNotPositive
	}

	defer lockUser(userID)()

	var expense models.Expense

	err := db.Transaction(func(tx *gorm.DB) error {
		summary, err := summarize(tx, userID)
		if err != nil {
			return err
		}

		if amount.GreaterThan(summary.RemainingBalance) {
			return ErrInsufficientBalance
		}

		expense = models.Expense{
			UserID:      userID,
			Category:    category,
			Amount:      amount,
			Description: description,
			Date:        date,
		}
		return tx.Create(&expense).Error
	})
	if err != nil {
		return models.Expense{}, err
	}

	return expense, nil
}

// CommitDraft turns the reviewed items of an invoice draft into
// expenses dated today and deletes the draft. The user may have edited
// name, amount and category of every item, so the reviewed items are
// passed in rather than read from the draft.
//
// Invoice commits are not gated on the remaining balance, a scanned
// receipt documents money that is already spent.
func CommitDraft(db *gorm.DB, userID uuid.UUID, draftID uuid.UUID, items []DraftItem) ([]models.Expense, error) {
	defer lockUser(userID)()

	expenses := make([]models.Expense, 0, len(items))
	today := types.Today()

	err := db.Transaction(func(tx *gorm.DB) error {
		var draft models.InvoiceDraft
		err := tx.Where("user_id = ?", userID).First(&draft, draftID).Error
		if err != nil {
			return err
		}

		for _, item := range items {
			if !item.Amount.IsPositive() {
				return ErrAmountNotPositive
			}

			expense := models.Expense{
				UserID:      userID,
				Category:    item.Category,
				Amount:      item.Amount,
				Description: item.Name,
				Date:        today,
			}
			err = tx.Create(&expense).Error
			if err != nil {
				return err
			}

			expenses = append(expenses, expense)
		}

		err = tx.Where("invoice_draft_id = ?", draft.ID).Delete(&models.InvoiceDraftItem{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&draft).Error
	})
	if err != nil {
		return nil, err
	}

	return expenses, nil
}

// DraftItem is one reviewed line item to be committed as an expense.
type DraftItem struct {
	Name     string          `json:"name" example:"Pizza"`
	Amount   decimal.Decimal `json:"amount" example:"250.00"`
	Category string          `json:"category" example:"Food"`
}
