package v1

import (
	"net/http"

	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/auth"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/httputil"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/ledger"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterDashboardRoutes registers the route for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGet)
		r.GET("", GetDashboard)
	}
}

// RegisterInsightsRoutes registers the route for insights with
// the RouterGroup that is passed.
func RegisterInsightsRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGet)
		r.GET("", GetInsights)
	}
}

// Dashboard is the combined view the client renders on its home
// screen, assembled in one request.
type Dashboard struct {
	Summary            ledger.Summary            `json:"summary"`
	RecurringPreview   []models.RecurringExpense `json:"recurringPreview"`   // The 5 newest recurring definitions
	RecurringThisMonth decimal.Decimal           `json:"recurringThisMonth"` // Materialized recurring spend in the current calendar month
	Limits             []Limit                   `json:"limits"`             // Limits with their current spend
	Goals              []GoalData                `json:"goals"`
}

type DashboardResponse struct {
	Error *string    `json:"error"` // The error, if any occurred
	Data  *Dashboard `json:"data"`  // The dashboard
}

type InsightsResponse struct {
	Error *string          `json:"error"` // The error, if any occurred
	Data  *ledger.Insights `json:"data"`  // The aggregated spending view
}

// GetDashboard materializes due recurring expenses and then assembles
// the dashboard.
func GetDashboard(c *gin.Context) {
	userID := auth.UserID(c)
	today := types.Today()

	_, err := ledger.ApplyRecurring(models.DB, userID, today)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &e})
		return
	}

	summary, err := ledger.Summarize(models.DB, userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &e})
		return
	}

	var preview []models.RecurringExpense
	err = models.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(5).
		Find(&preview).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &e})
		return
	}

	recurringMonth, err := ledger.RecurringMonthTotal(models.DB, userID, today)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &e})
		return
	}

	var limitRows []models.CategoryLimit
	err = models.DB.
		Where("user_id = ?", userID).
		Order("category asc").
		Find(&limitRows).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &e})
		return
	}

	totals, err := ledger.CategoryTotals(models.DB, userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &e})
		return
	}

	spentByCategory := make(map[string]decimal.Decimal, len(totals))
	for _, total := range totals {
		spentByCategory[total.Category] = total.Total
	}

	limits := make([]Limit, 0, len(limitRows))
	for _, limit := range limitRows {
		limits = append(limits, Limit{CategoryLimit: limit, Spent: spentByCategory[limit.Category]})
	}

	var goalRows []models.Goal
	err = models.DB.
		Where("user_id = ?", userID).
		Order("due_date asc, created_at asc").
		Find(&goalRows).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &e})
		return
	}

	goals := make([]GoalData, 0, len(goalRows))
	for _, goal := range goalRows {
		goals = append(goals, newGoal(goal))
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: &Dashboard{
		Summary:            summary,
		RecurringPreview:   preview,
		RecurringThisMonth: recurringMonth,
		Limits:             limits,
		Goals:              goals,
	}})
}

// GetInsights materializes due recurring expenses and returns the
// per-category and per-day spending aggregates.
func GetInsights(c *gin.Context) {
	userID := auth.UserID(c)
	today := types.Today()

	_, err := ledger.ApplyRecurring(models.DB, userID, today)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InsightsResponse{Error: &e})
		return
	}

	insights, err := ledger.GetInsights(models.DB, userID, today)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), InsightsResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, InsightsResponse{Data: &insights})
}
