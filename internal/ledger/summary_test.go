package ledger_test

import (
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/ledger"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestSummarizeEmpty() {
	user := suite.createTestUser("summary-empty@example.com")

	summary, err := ledger.Summarize(models.DB, user.ID)
	assert.Nil(suite.T(), err)

	assert.True(suite.T(), summary.TotalAllowance.IsZero(), "Total allowance is not zero: %s", summary.TotalAllowance)
	assert.True(suite.T(), summary.TotalExpenses.IsZero(), "Total expenses is not zero: %s", summary.TotalExpenses)
	assert.True(suite.T(), summary.TotalSaved.IsZero(), "Total saved is not zero: %s", summary.TotalSaved)
	assert.True(suite.T(), summary.RemainingBalance.IsZero(), "Remaining balance is not zero: %s", summary.RemainingBalance)
	assert.True(suite.T(), summary.SpentPercentage.IsZero(), "Spent percentage is not zero: %s", summary.SpentPercentage)
	assert.True(suite.T(), summary.SafeDailyLimit.IsZero(), "Safe daily limit is not zero: %s", summary.SafeDailyLimit)
}

func (suite *TestSuiteStandard) TestSummarize() {
	user := suite.createTestUser("summary@example.com")

	suite.fund(user, 1000)
	suite.spend(user, "Food", 150, types.Today())

	_, err := ledger.CreateGoal(models.DB, user.ID, models.Goal{
		Title:        "Headphones",
		TargetAmount: decimal.NewFromInt(500),
		SavedAmount:  decimal.NewFromInt(200),
		DueDate:      types.Today().AddDays(60),
	})
	assert.Nil(suite.T(), err)

	summary, err := ledger.Summarize(models.DB, user.ID)
	assert.Nil(suite.T(), err)

	assert.True(suite.T(), summary.TotalAllowance.Equal(decimal.NewFromInt(1000)), "Total allowance is wrong: %s", summary.TotalAllowance)
	assert.True(suite.T(), summary.TotalExpenses.Equal(decimal.NewFromInt(150)), "Total expenses is wrong: %s", summary.TotalExpenses)
	assert.True(suite.T(), summary.TotalSaved.Equal(decimal.NewFromInt(200)), "Total saved is wrong: %s", summary.TotalSaved)
	assert.True(suite.T(), summary.DisplayedAllowance.Equal(decimal.NewFromInt(800)), "Displayed allowance is wrong: %s", summary.DisplayedAllowance)
	assert.True(suite.T(), summary.RemainingBalance.Equal(decimal.NewFromInt(650)), "Remaining balance is wrong: %s", summary.RemainingBalance)

	// 150 of 1000 spent
	assert.True(suite.T(), summary.SpentPercentage.Equal(decimal.NewFromInt(15)), "Spent percentage is wrong: %s", summary.SpentPercentage)

	// 650 / 30, rounded to two decimal places
	assert.True(suite.T(), summary.SafeDailyLimit.Equal(decimal.NewFromFloat(21.67)), "Safe daily limit is wrong: %s", summary.SafeDailyLimit)
}

func (suite *TestSuiteStandard) TestSummarizeOnlyExpenses() {
	user := suite.createTestUser("summary-overdrawn@example.com")

	// Balances can go negative through invoice commits, those are not
	// gated on the remaining balance
	draft := models.InvoiceDraft{UserID: user.ID}
	err := models.DB.Create(&draft).Error
	assert.Nil(suite.T(), err)

	_, err = ledger.CommitDraft(models.DB, user.ID, draft.ID, []ledger.DraftItem{
		{Name: "Pizza", Amount: decimal.NewFromInt(250), Category: "Food"},
	})
	assert.Nil(suite.T(), err)

	summary, err := ledger.Summarize(models.DB, user.ID)
	assert.Nil(suite.T(), err)

	assert.True(suite.T(), summary.RemainingBalance.Equal(decimal.NewFromInt(-250)), "Remaining balance is wrong: %s", summary.RemainingBalance)

	// No allowance means no percentage and no daily limit
	assert.True(suite.T(), summary.SpentPercentage.IsZero(), "Spent percentage is not zero: %s", summary.SpentPercentage)
	assert.True(suite.T(), summary.SafeDailyLimit.IsZero(), "Safe daily limit is not zero: %s", summary.SafeDailyLimit)
}

func (suite *TestSuiteStandard) TestSummarizePerUser() {
	first := suite.createTestUser("summary-first@example.com")
	second := suite.createTestUser("summary-second@example.com")

	suite.fund(first, 1000)
	suite.fund(second, 300)

	summary, err := ledger.Summarize(models.DB, second.ID)
	assert.Nil(suite.T(), err)

	assert.True(suite.T(), summary.TotalAllowance.Equal(decimal.NewFromInt(300)), "Other users' allowances leak into the summary: %s", summary.TotalAllowance)
}
