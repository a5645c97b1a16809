package ledger_test

import (
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/ledger"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// createTestRecurring creates a recurring definition due on the given date.
func (suite *TestSuiteStandard) createTestRecurring(user models.User, title string, frequency models.Frequency, nextDate types.Date) models.RecurringExpense {
	definition := models.RecurringExpense{
		UserID:    user.ID,
		Title:     title,
		Amount:    decimal.NewFromInt(100),
		Category:  "Entertainment",
		Frequency: frequency,
		NextDate:  nextDate,
	}

	err := models.DB.Create(&definition).Error
	if err != nil {
		suite.Assert().FailNow("Resource could not be saved", "Error: %s, Object: %#v", err, definition)
	}

	return definition
}

func (suite *TestSuiteStandard) TestApplyRecurringDueToday() {
	user := suite.createTestUser("scheduler-due@example.com")
	today := types.Today()
	definition := suite.createTestRecurring(user, "Streaming", models.FrequencyMonthly, today)

	materialized, err := ledger.ApplyRecurring(models.DB, user.ID, today)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, materialized)

	var expense models.Expense
	err = models.DB.Where("user_id = ?", user.ID).First(&expense).Error
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), "Streaming"+models.RecurringSuffix, expense.Description, "Materialized expense is not marked as recurring")
	assert.Equal(suite.T(), "Entertainment", expense.Category)
	assert.True(suite.T(), expense.Amount.Equal(definition.Amount), "Amount is wrong: %s", expense.Amount)
	assert.True(suite.T(), expense.Date.Equal(today), "Date is wrong: %s", expense.Date)

	// The due date moved 30 days ahead
	err = models.DB.First(&definition, definition.ID).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), definition.NextDate.Equal(today.AddDays(30)), "Next date is wrong: %s", definition.NextDate)
}

func (suite *TestSuiteStandard) TestApplyRecurringIdempotentPerDay() {
	user := suite.createTestUser("scheduler-idempotent@example.com")
	today := types.Today()
	suite.createTestRecurring(user, "Streaming", models.FrequencyDaily, today)

	materialized, err := ledger.ApplyRecurring(models.DB, user.ID, today)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, materialized)

	// The second run on the same day inserts nothing
	materialized, err = ledger.ApplyRecurring(models.DB, user.ID, today)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 0, materialized)

	var count int64
	err = models.DB.Model(&models.Expense{}).Where("user_id = ?", user.ID).Count(&count).Error
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(1), count, "The expense was duplicated")
}

func (suite *TestSuiteStandard) TestApplyRecurringNotDue() {
	user := suite.createTestUser("scheduler-not-due@example.com")
	today := types.Today()

	// Not due yet
	suite.createTestRecurring(user, "Rent", models.FrequencyMonthly, today.AddDays(3))

	// Overdue: missed days are lost, the definition only triggers on
	// exact equality
	suite.createTestRecurring(user, "Gym", models.FrequencyWeekly, today.AddDays(-2))

	materialized, err := ledger.ApplyRecurring(models.DB, user.ID, today)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 0, materialized)
}

func (suite *TestSuiteStandard) TestApplyRecurringPaused() {
	user := suite.createTestUser("scheduler-paused@example.com")
	today := types.Today()

	definition := suite.createTestRecurring(user, "Streaming", models.FrequencyDaily, today)
	err := models.DB.Model(&definition).Update("status", models.RecurringPaused).Error
	assert.Nil(suite.T(), err)

	materialized, err := ledger.ApplyRecurring(models.DB, user.ID, today)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 0, materialized)

	// Pausing freezes the schedule, the due date does not move
	err = models.DB.First(&definition, definition.ID).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), definition.NextDate.Equal(today), "Next date moved for a paused definition: %s", definition.NextDate)
}

func (suite *TestSuiteStandard) TestApplyRecurringSkipsOtherUsers() {
	user := suite.createTestUser("scheduler-user@example.com")
	other := suite.createTestUser("scheduler-other@example.com")
	today := types.Today()

	suite.createTestRecurring(other, "Streaming", models.FrequencyDaily, today)

	materialized, err := ledger.ApplyRecurring(models.DB, user.ID, today)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 0, materialized, "Another user's definition was materialized")
}

func (suite *TestSuiteStandard) TestApplyRecurringNoBalanceGate() {
	user := suite.createTestUser("scheduler-balance@example.com")
	today := types.Today()

	// No allowance at all, the charge still goes through
	suite.createTestRecurring(user, "Streaming", models.FrequencyMonthly, today)

	materialized, err := ledger.ApplyRecurring(models.DB, user.ID, today)
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, materialized)

	summary, err := ledger.Summarize(models.DB, user.ID)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), summary.RemainingBalance.IsNegative(), "Balance should be negative: %s", summary.RemainingBalance)
}
