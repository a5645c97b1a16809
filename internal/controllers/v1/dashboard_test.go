package v1_test

import (
	"net/http"

	v1 "github.com/Meghana-Kona/Student-Budget-Tracker/internal/controllers/v1"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
	"github.com/Meghana-Kona/Student-Budget-Tracker/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestDashboard() {
	headers := suite.signUp("dashboard@example.com")
	suite.addAllowance(headers, 1000)

	suite.createTestExpense(headers, "Food", 150)
	suite.createTestGoal(headers, 500, 200)
	suite.createTestLimit(headers, "Food", 2000)
	suite.createTestRecurring(headers, "Streaming", models.FrequencyMonthly)

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard", nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	data := response.Data

	// The recurring charge due today is included: 1000 - 200 saved
	// - 150 spent - 100 recurring
	assert.True(suite.T(), data.Summary.RemainingBalance.Equal(decimal.NewFromInt(550)), "Remaining balance is wrong: %s", data.Summary.RemainingBalance)

	assert.Len(suite.T(), data.RecurringPreview, 1)
	assert.True(suite.T(), data.RecurringThisMonth.Equal(decimal.NewFromInt(100)), "Recurring month spend is wrong: %s", data.RecurringThisMonth)

	assert.Len(suite.T(), data.Limits, 1)
	assert.True(suite.T(), data.Limits[0].Spent.Equal(decimal.NewFromInt(150)), "Limit spend is wrong: %s", data.Limits[0].Spent)

	assert.Len(suite.T(), data.Goals, 1)
	assert.True(suite.T(), data.Goals[0].Remainder.Equal(decimal.NewFromInt(300)))
}

func (suite *TestSuiteStandard) TestDashboardEmpty() {
	headers := suite.signUp("dashboard-empty@example.com")

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/dashboard", nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.DashboardResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.True(suite.T(), response.Data.Summary.TotalAllowance.IsZero())
	assert.Len(suite.T(), response.Data.RecurringPreview, 0)
	assert.Len(suite.T(), response.Data.Limits, 0)
	assert.Len(suite.T(), response.Data.Goals, 0)
}

func (suite *TestSuiteStandard) TestInsights() {
	headers := suite.signUp("insights@example.com")
	suite.addAllowance(headers, 1000)

	suite.createTestExpense(headers, "Food", 150)
	suite.createTestGoal(headers, 500, 200)

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/insights", nil, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.InsightsResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	assert.Len(suite.T(), response.Data.Daily, 7)

	categories := make(map[string]decimal.Decimal, len(response.Data.Categories))
	for _, slice := range response.Data.Categories {
		categories[slice.Category] = slice.Total
	}

	assert.True(suite.T(), categories["Food"].Equal(decimal.NewFromInt(150)), "Food slice is wrong: %s", categories["Food"])
	assert.True(suite.T(), categories["Savings"].Equal(decimal.NewFromInt(200)), "Savings slice is wrong: %s", categories["Savings"])
}
