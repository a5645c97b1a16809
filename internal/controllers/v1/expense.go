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

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPostDelete)
		r.GET("", GetExpenses)
		r.POST("", CreateExpense)
		r.DELETE("", DeleteExpenses)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", httputil.OptionsDelete)
		r.DELETE("/:id", DeleteExpense)
	}
}

type ExpenseEditable struct {
	Category    string          `json:"category" example:"Food"`
	Amount      decimal.Decimal `json:"amount" example:"250" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"`
	Description string          `json:"description" example:"Pizza with friends"`
}

type ExpenseResponse struct {
	Error *string         `json:"error"` // The error, if any occurred
	Data  *models.Expense `json:"data"`  // The expense entry
}

type ExpenseListResponse struct {
	Error *string          `json:"error"` // The error, if any occurred
	Data  []models.Expense `json:"data"`  // List of expense entries
}

// CreateExpense logs a manual expense dated today. The amount is
// checked against the remaining balance, spending more than is
// available is rejected without any mutation.
func CreateExpense(c *gin.Context) {
	var editable ExpenseEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	expense, err := ledger.RecordExpense(models.DB, auth.UserID(c), editable.Category, editable.Amount, editable.Description, types.Today())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, ExpenseResponse{Data: &expense})
}

// GetExpenses returns the user's expenses, newest first. Recurring
// expenses that are due today are materialized first so that the list
// always includes them.
func GetExpenses(c *gin.Context) {
	userID := auth.UserID(c)

	_, err := ledger.ApplyRecurring(models.DB, userID, types.Today())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseListResponse{Error: &e})
		return
	}

	query := models.DB.
		Where("user_id = ?", userID).
		Order("date desc, created_at desc")

	if category, ok := c.GetQuery("category"); ok {
		query = query.Where("category = ?", category)
	}

	var expenses []models.Expense
	err = query.Find(&expenses).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ExpenseListResponse{Data: expenses})
}

// DeleteExpense deletes a single expense.
func DeleteExpense(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, httpError{Error: e})
		return
	}

	var expense models.Expense
	err := models.DB.Where("user_id = ?", auth.UserID(c)).First(&expense, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// DeleteExpenses deletes all of the user's expenses.
func DeleteExpenses(c *gin.Context) {
	err := models.DB.Where("user_id = ?", auth.UserID(c)).Delete(&models.Expense{}).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
