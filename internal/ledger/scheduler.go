package ledger

import (
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ApplyRecurring materializes every active recurring expense of the
// user that is due today and advances its next due date. It runs at
// the start of every ledger view so that displayed totals always
// include today's recurring charges.
//
// Only a next date equal to today triggers. Days on which the
// scheduler never ran are not backfilled. Because the next date is
// advanced past today in the same transaction as the materialization,
// running the scheduler again on the same day inserts nothing.
//
// Paused definitions are skipped entirely: they are neither
// materialized nor advanced, so pausing freezes the schedule until the
// definition is resumed.
func ApplyRecurring(db *gorm.DB, userID uuid.UUID, today types.Date) (int, error) {
	defer lockUser(userID)()

	materialized := 0

	err := db.Transaction(func(tx *gorm.DB) error {
		var definitions []models.RecurringExpense
		err := tx.Where(&models.RecurringExpense{UserID: userID, Status: models.RecurringActive}).Find(&definitions).Error
		if err != nil {
			return err
		}

		for _, definition := range definitions {
			if !definition.NextDate.Equal(today) {
				continue
			}

			expense := models.Expense{
				UserID:      userID,
				Category:    definition.Category,
				Amount:      definition.Amount,
				Description: definition.Title + models.RecurringSuffix,
				Date:        today,
			}
			err = tx.Create(&expense).Error
			if err != nil {
				return err
			}

			err = tx.Model(&definition).Update("next_date", definition.Frequency.Advance(today)).Error
			if err != nil {
				return err
			}

			materialized++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	if materialized > 0 {
		log.Debug().
			Str("user", userID.String()).
			Int("materialized", materialized).
			Msg("recurring expenses applied")
	}

	return materialized, nil
}
