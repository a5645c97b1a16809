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

// RegisterGoalRoutes registers the routes for savings goals with
// the RouterGroup that is passed.
func RegisterGoalRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetGoals)
		r.POST("", CreateGoal)
	}

	// Goal with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.PATCH("/:id", UpdateGoal)
		r.DELETE("/:id", DeleteGoal)
	}

	// Contributions
	{
		r.OPTIONS("/:id/contributions", httputil.OptionsPost)
		r.POST("/:id/contributions", CreateContribution)
	}
}

type GoalEditable struct {
	Title        string          `json:"title" example:"New laptop"`
	TargetAmount decimal.Decimal `json:"targetAmount" example:"45000" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"`
	InitialSave  decimal.Decimal `json:"initialSave" example:"5000" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"`
	DueDate      types.Date      `json:"dueDate" example:"2026-12-31T00:00:00Z"`
}

type GoalUpdateEditable struct {
	Title        *string          `json:"title" example:"Refurbished laptop"`
	TargetAmount *decimal.Decimal `json:"targetAmount" example:"30000"`
	DueDate      *types.Date      `json:"dueDate" example:"2027-03-31T00:00:00Z"`
}

type ContributionEditable struct {
	Amount decimal.Decimal `json:"amount" example:"1500" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"`
}

// GoalData is a goal together with its derived figures.
type GoalData struct {
	models.Goal
	Remainder  decimal.Decimal `json:"remainder" example:"40000"` // What can still be contributed
	Overfunded bool            `json:"overfunded" example:"false"`
}

type GoalResponse struct {
	Error *string   `json:"error"` // The error, if any occurred
	Data  *GoalData `json:"data"`  // The goal
}

type GoalListResponse struct {
	Error *string    `json:"error"` // The error, if any occurred
	Data  []GoalData `json:"data"`  // List of goals
}

func newGoal(goal models.Goal) GoalData {
	return GoalData{
		Goal:       goal,
		Remainder:  ledger.Remainder(goal),
		Overfunded: goal.Overfunded(),
	}
}

// CreateGoal creates a savings goal. A positive initial save moves
// money out of the pool right away, so it has to fit into the
// remaining balance.
func CreateGoal(c *gin.Context) {
	var editable GoalEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	goal, err := ledger.CreateGoal(models.DB, auth.UserID(c), models.Goal{
		Title:        editable.Title,
		TargetAmount: editable.TargetAmount,
		SavedAmount:  editable.InitialSave,
		DueDate:      editable.DueDate,
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	data := newGoal(goal)
	c.JSON(http.StatusCreated, GoalResponse{Data: &data})
}

// GetGoals returns the user's goals.
func GetGoals(c *gin.Context) {
	var goals []models.Goal
	err := models.DB.
		Where("user_id = ?", auth.UserID(c)).
		Order("due_date asc, created_at asc").
		Find(&goals).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalListResponse{Error: &e})
		return
	}

	data := make([]GoalData, 0, len(goals))
	for _, goal := range goals {
		data = append(data, newGoal(goal))
	}

	c.JSON(http.StatusOK, GoalListResponse{Data: data})
}

// UpdateGoal changes title, target amount or due date of a goal.
//
// The saved amount is never touched here and is not re-validated.
// Lowering the target below what is already saved marks the goal as
// overfunded instead of failing.
func UpdateGoal(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, GoalResponse{Error: &e})
		return
	}

	var editable GoalUpdateEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	var goal models.Goal
	err = models.DB.Where("user_id = ?", auth.UserID(c)).First(&goal, uri.ID.UUID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	updates := map[string]any{}
	if editable.Title != nil {
		updates["title"] = *editable.Title
	}
	if editable.TargetAmount != nil {
		if !editable.TargetAmount.IsPositive() {
			e := models.ErrGoalTargetNotPositive.Error()
			c.JSON(http.StatusBadRequest, GoalResponse{Error: &e})
			return
		}
		updates["target_amount"] = *editable.TargetAmount
	}
	if editable.DueDate != nil {
		updates["due_date"] = *editable.DueDate
	}

	if len(updates) > 0 {
		err = models.DB.Model(&goal).Updates(updates).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), GoalResponse{Error: &e})
			return
		}
	}

	data := newGoal(goal)
	c.JSON(http.StatusOK, GoalResponse{Data: &data})
}

// CreateContribution moves money from the available balance into the
// goal's saved amount.
func CreateContribution(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, GoalResponse{Error: &e})
		return
	}

	var editable ContributionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	goal, err := ledger.Contribute(models.DB, auth.UserID(c), uri.ID.UUID, editable.Amount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GoalResponse{Error: &e})
		return
	}

	data := newGoal(goal)
	c.JSON(http.StatusOK, GoalResponse{Data: &data})
}

// DeleteGoal deletes a goal. The saved amount flows back into the
// available balance since it no longer appears in the savings sum.
func DeleteGoal(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, httpError{Error: e})
		return
	}

	var goal models.Goal
	err := models.DB.Where("user_id = ?", auth.UserID(c)).First(&goal, uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.Delete(&goal).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
