package ledger_test

import (
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/ledger"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// createTestGoal creates a goal with the given target and initial save.
func (suite *TestSuiteStandard) createTestGoal(user models.User, target, saved int64) models.Goal {
	goal, err := ledger.CreateGoal(models.DB, user.ID, models.Goal{
		Title:        "Test Goal",
		TargetAmount: decimal.NewFromInt(target),
		SavedAmount:  decimal.NewFromInt(saved),
		DueDate:      types.Today().AddDays(90),
	})
	if err != nil {
		suite.Assert().FailNow("Goal could not be created", "Error: %s", err)
	}

	return goal
}

func (suite *TestSuiteStandard) TestCreateGoal() {
	user := suite.createTestUser("goal@example.com")
	suite.fund(user, 1000)

	goal := suite.createTestGoal(user, 500, 200)

	assert.True(suite.T(), goal.SavedAmount.Equal(decimal.NewFromInt(200)))
	assert.False(suite.T(), goal.Overfunded())

	// The initial save left the pool
	summary, err := ledger.Summarize(models.DB, user.ID)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), summary.RemainingBalance.Equal(decimal.NewFromInt(800)), "Remaining balance is wrong: %s", summary.RemainingBalance)
}

func (suite *TestSuiteStandard) TestCreateGoalInitialSaveBounds() {
	user := suite.createTestUser("goal-bounds@example.com")
	suite.fund(user, 1000)

	tests := []struct {
		name   string
		target int64
		saved  int64
	}{
		{"negative initial save", 500, -1},
		{"initial save above target", 500, 501},
	}

	for _, tt := range tests {
		_, err := ledger.CreateGoal(models.DB, user.ID, models.Goal{
			Title:        tt.name,
			TargetAmount: decimal.NewFromInt(tt.target),
			SavedAmount:  decimal.NewFromInt(tt.saved),
		})
		assert.ErrorIs(suite.T(), err, ledger.ErrInitialSaveOutOfBounds, "Wrong error for %s", tt.name)
	}
}

func (suite *TestSuiteStandard) TestCreateGoalInsufficientBalance() {
	user := suite.createTestUser("goal-insufficient@example.com")
	suite.fund(user, 100)

	_, err := ledger.CreateGoal(models.DB, user.ID, models.Goal{
		Title:        "Too ambitious",
		TargetAmount: decimal.NewFromInt(500),
		SavedAmount:  decimal.NewFromInt(200),
	})
	assert.ErrorIs(suite.T(), err, ledger.ErrInsufficientBalance)
}

func (suite *TestSuiteStandard) TestContribute() {
	user := suite.createTestUser("contribute@example.com")
	suite.fund(user, 1000)
	goal := suite.createTestGoal(user, 500, 0)

	updated, err := ledger.Contribute(models.DB, user.ID, goal.ID, decimal.NewFromInt(300))
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), updated.SavedAmount.Equal(decimal.NewFromInt(300)), "Saved amount is wrong: %s", updated.SavedAmount)

	summary, err := ledger.Summarize(models.DB, user.ID)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), summary.RemainingBalance.Equal(decimal.NewFromInt(700)), "Remaining balance is wrong: %s", summary.RemainingBalance)
}

func (suite *TestSuiteStandard) TestContributeNotPositive() {
	user := suite.createTestUser("contribute-invalid@example.com")
	suite.fund(user, 1000)
	goal := suite.createTestGoal(user, 500, 0)

	_, err := ledger.Contribute(models.DB, user.ID, goal.ID, decimal.Zero)
	assert.ErrorIs(suite.T(), err, ledger.ErrAmountNotPositive)
}

func (suite *TestSuiteStandard) TestContributeOverfund() {
	user := suite.createTestUser("contribute-overfund@example.com")
	suite.fund(user, 1000)
	goal := suite.createTestGoal(user, 500, 400)

	_, err := ledger.Contribute(models.DB, user.ID, goal.ID, decimal.NewFromInt(101))
	assert.ErrorIs(suite.T(), err, ledger.ErrGoalOverfund)

	// Filling the goal exactly is fine
	updated, err := ledger.Contribute(models.DB, user.ID, goal.ID, decimal.NewFromInt(100))
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), updated.SavedAmount.Equal(updated.TargetAmount))
	assert.True(suite.T(), ledger.Remainder(updated).IsZero())
}

func (suite *TestSuiteStandard) TestContributeInsufficientBalance() {
	user := suite.createTestUser("contribute-insufficient@example.com")
	suite.fund(user, 1000)
	goal := suite.createTestGoal(user, 5000, 0)
	suite.spend(user, "Food", 950, types.Today())

	// 50 remain in the pool
	_, err := ledger.Contribute(models.DB, user.ID, goal.ID, decimal.NewFromInt(51))
	assert.ErrorIs(suite.T(), err, ledger.ErrInsufficientBalance)

	// The goal is untouched
	var unchanged models.Goal
	err = models.DB.First(&unchanged, goal.ID).Error
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), unchanged.SavedAmount.IsZero(), "A failed contribution mutated the goal: %s", unchanged.SavedAmount)
}

func (suite *TestSuiteStandard) TestContributeWrongUser() {
	user := suite.createTestUser("contribute-user@example.com")
	other := suite.createTestUser("contribute-other@example.com")
	suite.fund(other, 1000)
	goal := suite.createTestGoal(other, 500, 0)

	suite.fund(user, 1000)
	_, err := ledger.Contribute(models.DB, user.ID, goal.ID, decimal.NewFromInt(100))
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestDeleteGoalRefundsPool() {
	user := suite.createTestUser("goal-delete@example.com")
	suite.fund(user, 1000)
	goal := suite.createTestGoal(user, 500, 200)

	err := models.DB.Delete(&goal).Error
	assert.Nil(suite.T(), err)

	// The saved amount flows back via the balance equation
	summary, err := ledger.Summarize(models.DB, user.ID)
	assert.Nil(suite.T(), err)
	assert.True(suite.T(), summary.RemainingBalance.Equal(decimal.NewFromInt(1000)), "Remaining balance is wrong: %s", summary.RemainingBalance)
}
