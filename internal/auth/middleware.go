package auth

import (
	"net/http"
	"strings"

	"github.com/Meghana-Kona/Student-Budget-Tracker/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextUser is the key under which the authenticated user's ID is
// stored in the request context.
const ContextUser = "authenticated-user"

// Middleware resolves the Authorization header to a user and aborts
// with 401 when that is not possible. Handlers behind it can rely on
// UserID returning a valid ID.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "a bearer token is required"})
			return
		}

		userID, err := ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}

		// The token outlives nothing: a deleted user's token must not
		// resolve
		var user models.User
		err = models.DB.First(&user, userID).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}

		c.Set(ContextUser, user.ID)
		c.Next()
	}
}

// UserID returns the authenticated user's ID from the request context.
func UserID(c *gin.Context) uuid.UUID {
	return c.MustGet(ContextUser).(uuid.UUID)
}
