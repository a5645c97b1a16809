package ledger

import (
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategorySpend is the expense total of one category.
type CategorySpend struct {
	Category string          `json:"category" example:"Food"`
	Total    decimal.Decimal `json:"total" example:"123.45"`
}

// DailySpend is the expense total of one calendar day.
type DailySpend struct {
	Date  types.Date      `json:"date" example:"2026-08-29T00:00:00Z"`
	Total decimal.Decimal `json:"total" example:"42.50"`
}

// Insights is the aggregated view over a user's spending.
type Insights struct {
	Summary    Summary         `json:"summary"`
	Categories []CategorySpend `json:"categories"` // Per-category totals, including a Savings slice when goals hold money
	Daily      []DailySpend    `json:"daily"`      // Totals for the last 7 days, zero-filled
}

// GetInsights aggregates spending per category and per day for the
// last seven days ending today.
func GetInsights(db *gorm.DB, userID uuid.UUID, today types.Date) (Insights, error) {
	summary, err := Summarize(db, userID)
	if err != nil {
		return Insights{}, err
	}

	categories, err := CategoryTotals(db, userID)
	if err != nil {
		return Insights{}, err
	}

	// Money sitting in goals shows up as its own slice
	if summary.TotalSaved.IsPositive() {
		categories = append(categories, CategorySpend{Category: "Savings", Total: summary.TotalSaved})
	}

	daily, err := dailyTotals(db, userID, today, 7)
	if err != nil {
		return Insights{}, err
	}

	return Insights{
		Summary:    summary,
		Categories: categories,
		Daily:      daily,
	}, nil
}

// CategoryTotals returns the expense sum per category.
func CategoryTotals(db *gorm.DB, userID uuid.UUID) ([]CategorySpend, error) {
	spend := make([]CategorySpend, 0)

	err := db.Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Select("category, SUM(amount) AS total").
		Group("category").
		Order("category ASC").
		Scan(&spend).Error
	if err != nil {
		return nil, err
	}

	return spend, nil
}

// dailyTotals returns one entry per day for the window ending today,
// oldest first. Days without expenses are filled with zero.
func dailyTotals(db *gorm.DB, userID uuid.UUID, today types.Date, days int) ([]DailySpend, error) {
	start := today.AddDays(-(days - 1))

	var rows []struct {
		Day   string
		Total decimal.Decimal
	}

	err := db.Model(&models.Expense{}).
		Where("user_id = ? AND date >= date(?)", userID, start).
		Select("date(date) AS day, SUM(amount) AS total").
		Group("day").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.Day] = row.Total
	}

	daily := make([]DailySpend, 0, days)
	for day := start; !day.After(today); day = day.AddDays(1) {
		daily = append(daily, DailySpend{Date: day, Total: totals[day.String()]})
	}

	return daily, nil
}

// RecurringMonthTotal sums the expenses the scheduler materialized in
// the calendar month of today.
func RecurringMonthTotal(db *gorm.DB, userID uuid.UUID, today types.Date) (decimal.Decimal, error) {
	var total decimal.Decimal

	err := db.Model(&models.Expense{}).
		Where("user_id = ? AND description LIKE ? AND date(date) >= date(?) AND date(date) <= date(?)",
			userID, "%"+models.RecurringSuffix, today.FirstOfMonth(), today).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}

	return total, nil
}
