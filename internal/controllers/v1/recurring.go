package v1

import (
	"net/http"

	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/auth"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/httputil"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterRecurringRoutes registers the routes for recurring expense
// definitions with the RouterGroup that is passed.
func RegisterRecurringRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetRecurringExpenses)
		r.POST("", CreateRecurringExpense)
	}

	// Definition with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.PATCH("/:id", UpdateRecurringExpense)
		r.DELETE("/:id", DeleteRecurringExpense)
	}
}

type RecurringEditable struct {
	Title     string           `json:"title" example:"Gym membership"`
	Amount    decimal.Decimal  `json:"amount" example:"500" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"`
	Category  string           `json:"category" example:"Personal Care"`
	Frequency models.Frequency `json:"frequency" example:"monthly" enums:"daily,weekly,monthly"`
}

type RecurringStatusEditable struct {
	Status models.RecurringStatus `json:"status" example:"paused" enums:"active,paused"`
}

type RecurringResponse struct {
	Error *string                  `json:"error"` // The error, if any occurred
	Data  *models.RecurringExpense `json:"data"`  // The recurring expense definition
}

type RecurringListResponse struct {
	Error *string                   `json:"error"` // The error, if any occurred
	Data  []models.RecurringExpense `json:"data"`  // List of definitions
}

// CreateRecurringExpense creates a definition. The first charge is due
// today, so it materializes on the next ledger view.
func CreateRecurringExpense(c *gin.Context) {
	var editable RecurringEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringResponse{Error: &e})
		return
	}

	definition := models.RecurringExpense{
		UserID:    auth.UserID(c),
		Title:     editable.Title,
		Amount:    editable.Amount,
		Category:  editable.Category,
		Frequency: editable.Frequency,
		NextDate:  types.Today(),
		Status:    models.RecurringActive,
	}
	err = models.DB.Create(&definition).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, RecurringResponse{Data: &definition})
}

// GetRecurringExpenses returns all of the user's definitions,
// including paused ones.
func GetRecurringExpenses(c *gin.Context) {
	var definitions []models.RecurringExpense
	err := models.DB.
		Where("user_id = ?", auth.UserID(c)).
		Order("created_at desc").
		Find(&definitions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, RecurringListResponse{Data: definitions})
}

// UpdateRecurringExpense pauses or resumes a definition.
//
// Pausing freezes the schedule: the next due date stays where it is
// and the scheduler skips the definition entirely. Resuming picks the
// schedule back up from that frozen date. Days that were missed while
// paused are not backfilled.
func UpdateRecurringExpense(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, RecurringResponse{Error: &e})
		return
	}

	var editable RecurringStatusEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringResponse{Error: &e})
		return
	}

	if !editable.Status.Valid() {
		e := models.ErrInvalidRecurringStatus.Error()
		c.JSON(http.StatusBadRequest, RecurringResponse{Error: &e})
		return
	}

	var definition models.RecurringExpense
	err = models.DB.Where("user_id = ?", auth.UserID(c)).First(&definition, uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringResponse{Error: &e})
		return
	}

	err = models.DB.Model(&definition).Update("status", editable.Status).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, RecurringResponse{Data: &definition})
}

// DeleteRecurringExpense deletes a definition. Expenses it already
// materialized stay in the ledger.
func DeleteRecurringExpense(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, httpError{Error: e})
		return
	}

	var definition models.RecurringExpense
	err := models.DB.Where("user_id = ?", auth.UserID(c)).First(&definition, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&definition).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
