package ledger

import (
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CreateGoal creates a savings goal. The initial save must lie between
// zero and the target amount, and a positive initial save must fit
// into the remaining balance since it moves money out of the pool.
func CreateGoal(db *gorm.DB, userID uuid.UUID, goal models.Goal) (models.Goal, error) {
	if goal.SavedAmount.IsNegative() || goal.SavedAmount.GreaterThan(goal.TargetAmount) {
		return models.Goal{}, ErrInitialSaveOutOfBounds
	}

	defer lockUser(userID)()

	err := db.Transaction(func(tx *gorm.DB) error {
		if goal.SavedAmount.IsPositive() {
			summary, err := summarize(tx, userID)
			if err != nil {
				return err
			}

			if goal.SavedAmount.GreaterThan(summary.RemainingBalance) {
				return ErrInsufficientBalance
			}
		}

		goal.UserID = userID
		return tx.Create(&goal).Error
	})
	if err != nil {
		return models.Goal{}, err
	}

	return goal, nil
}

// Contribute moves money from the available balance into a goal's
// saved amount.
//
// It fails without mutation when the amount is not positive, when it
// would push the saved amount past the target, or when it exceeds the
// remaining balance. Check and update run in one transaction under the
// user's lock.
func Contribute(db *gorm.DB, userID uuid.UUID, goalID uuid.UUID, amount decimal.Decimal) (models.Goal, error) {
	if !amount.IsPositive() {
		return models.Goal{}, ErrAmountNotPositive
	}

	defer lockUser(userID)()

	var goal models.Goal

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&goal, goalID).Error
		if err != nil {
			return err
		}

		if amount.GreaterThan(goal.TargetAmount.Sub(goal.SavedAmount)) {
			return ErrGoalOverfund
		}

		summary, err := summarize(tx, userID)
		if err != nil {
			return err
		}

		if amount.GreaterThan(summary.RemainingBalance) {
			return ErrInsufficientBalance
		}

		goal.SavedAmount = goal.SavedAmount.Add(amount)
		return tx.Model(&goal).Update("saved_amount", goal.SavedAmount).Error
	})
	if err != nil {
		return models.Goal{}, err
	}

	return goal, nil
}

// Remainder returns how much can still be contributed to the goal.
func Remainder(goal models.Goal) decimal.Decimal {
	remainder := goal.TargetAmount.Sub(goal.SavedAmount)
	if remainder.IsNegative() {
		return decimal.Zero
	}

	return remainder
}
