package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/auth"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/httputil"
	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the routes for signup and login with
// the RouterGroup that is passed. These are the only routes that do
// not require a bearer token.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/register", httputil.OptionsPost)
		r.POST("/register", Register)
	}
	{
		r.OPTIONS("/login", httputil.OptionsPost)
		r.POST("/login", Login)
	}
}

type RegisterRequest struct {
	Name     string `json:"name" example:"Meghana"`
	Email    string `json:"email" example:"meghana@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

type UserResponse struct {
	Error *string      `json:"error"` // The error, if any occurred
	Data  *models.User `json:"data"`  // The created user
}

type LoginRequest struct {
	Email    string `json:"email" example:"meghana@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

type LoginResponse struct {
	Error *string `json:"error"` // The error, if any occurred
	Data  *Token  `json:"data"`  // The issued token
}

type Token struct {
	Token string `json:"token"` // Bearer token for the Authorization header
}

// Register creates a new user.
func Register(c *gin.Context) {
	var request RegisterRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	if strings.TrimSpace(request.Name) == "" || strings.TrimSpace(request.Email) == "" || request.Password == "" {
		e := errFieldsMissing.Error()
		c.JSON(http.StatusBadRequest, UserResponse{Error: &e})
		return
	}

	hash, err := auth.HashPassword(request.Password)
	if err != nil {
		e := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, UserResponse{Error: &e})
		return
	}

	user := models.User{
		Name:         request.Name,
		Email:        request.Email,
		PasswordHash: hash,
	}
	err = models.DB.Create(&user).Error
	if err != nil {
		e := err.Error()
		s := status(err)
		if errors.Is(err, models.ErrEmailTaken) {
			s = http.StatusConflict
		}
		c.JSON(s, UserResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, UserResponse{Data: &user})
}

// Login verifies the credentials and issues a bearer token.
func Login(c *gin.Context) {
	var request LoginRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LoginResponse{Error: &e})
		return
	}

	var user models.User
	err = models.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(request.Email))).First(&user).Error
	if err != nil || !auth.CheckPassword(user.PasswordHash, request.Password) {
		// The same response for unknown email and wrong password
		e := errLoginFailed.Error()
		c.JSON(http.StatusUnauthorized, LoginResponse{Error: &e})
		return
	}

	token, err := auth.NewToken(user.ID)
	if err != nil {
		e := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, LoginResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Data: &Token{Token: token}})
}
