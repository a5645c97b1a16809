package v1

import (
	"net/http"

	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/auth"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/httputil"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/ledger"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterAllowanceRoutes registers the routes for allowances with
// the RouterGroup that is passed.
//
// Allowances are append-only, there are no update or delete routes.
func RegisterAllowanceRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetAllowances)
		r.POST("", CreateAllowance)
	}
}

type AllowanceEditable struct {
	Amount decimal.Decimal `json:"amount" example:"1000" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"`
}

type AllowanceResponse struct {
	Error *string           `json:"error"` // The error, if any occurred
	Data  *models.Allowance `json:"data"`  // The allowance entry
}

type AllowanceListResponse struct {
	Error *string            `json:"error"` // The error, if any occurred
	Data  []models.Allowance `json:"data"`  // List of allowance entries
}

// CreateAllowance adds money to the user's pool, dated today.
func CreateAllowance(c *gin.Context) {
	var editable AllowanceEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllowanceResponse{Error: &e})
		return
	}

	allowance, err := ledger.AddAllowance(models.DB, auth.UserID(c), editable.Amount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllowanceResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, AllowanceResponse{Data: &allowance})
}

// GetAllowances returns the user's allowance entries, newest first.
func GetAllowances(c *gin.Context) {
	var allowances []models.Allowance
	err := models.DB.
		Where("user_id = ?", auth.UserID(c)).
		Order("date desc, created_at desc").
		Find(&allowances).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AllowanceListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, AllowanceListResponse{Data: allowances})
}
