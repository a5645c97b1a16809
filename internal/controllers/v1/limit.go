package v1

import (
	"net/http"

	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/auth"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/httputil"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/ledger"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RegisterLimitRoutes registers the routes for category limits with
// the RouterGroup that is passed.
func RegisterLimitRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetLimits)
		r.POST("", CreateLimit)
	}

	// Limit with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.PATCH("/:id", UpdateLimit)
		r.DELETE("/:id", DeleteLimit)
	}
}

type LimitEditable struct {
	Category    string          `json:"category" example:"Food"`
	LimitAmount decimal.Decimal `json:"limitAmount" example:"2000" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"`
}

type LimitAmountEditable struct {
	LimitAmount decimal.Decimal `json:"limitAmount" example:"2500" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"`
}

// Limit is a category limit together with the current spend in that
// category. The spend is display data, nothing is ever blocked by it.
type Limit struct {
	models.CategoryLimit
	Spent decimal.Decimal `json:"spent" example:"1250"` // Current expense total in this category
}

type LimitResponse struct {
	Error *string `json:"error"` // The error, if any occurred
	Data  *Limit  `json:"data"`  // The category limit
}

type LimitListResponse struct {
	Error *string `json:"error"` // The error, if any occurred
	Data  []Limit `json:"data"`  // List of category limits
}

// newLimit decorates a category limit with its current spend.
func newLimit(db *gorm.DB, limit models.CategoryLimit) (Limit, error) {
	totals, err := ledger.CategoryTotals(db, limit.UserID)
	if err != nil {
		return Limit{}, err
	}

	spent := decimal.Zero
	for _, total := range totals {
		if total.Category == limit.Category {
			spent = total.Total
			break
		}
	}

	return Limit{CategoryLimit: limit, Spent: spent}, nil
}

// CreateLimit creates a limit for a category. Only one limit per
// category is allowed.
func CreateLimit(c *gin.Context) {
	var editable LimitEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LimitResponse{Error: &e})
		return
	}

	limit := models.CategoryLimit{
		UserID:      auth.UserID(c),
		Category:    editable.Category,
		LimitAmount: editable.LimitAmount,
	}
	err = models.DB.Create(&limit).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LimitResponse{Error: &e})
		return
	}

	data, err := newLimit(models.DB, limit)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LimitResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, LimitResponse{Data: &data})
}

// GetLimits returns the user's limits, each with the current spend in
// its category.
func GetLimits(c *gin.Context) {
	userID := auth.UserID(c)

	var limits []models.CategoryLimit
	err := models.DB.
		Where("user_id = ?", userID).
		Order("category asc").
		Find(&limits).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LimitListResponse{Error: &e})
		return
	}

	totals, err := ledger.CategoryTotals(models.DB, userID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LimitListResponse{Error: &e})
		return
	}

	spentByCategory := make(map[string]decimal.Decimal, len(totals))
	for _, total := range totals {
		spentByCategory[total.Category] = total.Total
	}

	data := make([]Limit, 0, len(limits))
	for _, limit := range limits {
		data = append(data, Limit{CategoryLimit: limit, Spent: spentByCategory[limit.Category]})
	}

	c.JSON(http.StatusOK, LimitListResponse{Data: data})
}

// UpdateLimit changes the amount of a limit. The category cannot be
// changed, delete and recreate the limit instead.
func UpdateLimit(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, LimitResponse{Error: &e})
		return
	}

	var editable LimitAmountEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LimitResponse{Error: &e})
		return
	}

	var limit models.CategoryLimit
	err = models.DB.Where("user_id = ?", auth.UserID(c)).First(&limit, uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LimitResponse{Error: &e})
		return
	}

	err = models.DB.Model(&limit).Update("limit_amount", editable.LimitAmount).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LimitResponse{Error: &e})
		return
	}

	data, err := newLimit(models.DB, limit)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LimitResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, LimitResponse{Data: &data})
}

// DeleteLimit deletes a limit.
func DeleteLimit(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, httpError{Error: e})
		return
	}

	var limit models.CategoryLimit
	err := models.DB.Where("user_id = ?", auth.UserID(c)).First(&limit, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// Hard delete: a soft-deleted row would still occupy the unique
	// (user, category) index and block recreating the limit
	err = models.DB.Unscoped().Delete(&limit).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
