package middleware

import (
	"net/http"

	"checkels_casino/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Admin restricts a route group to admin accounts. Requires JWT to run
// first; the admin flag is read from the database so a revoked admin loses
// access immediately, not at token expiry.
func Admin(db *pgxpool.Pool) gin.HandlerFunc {
	accounts := repository.NewAccountRepository(db)

	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID, ok := userIDVal.(int64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user"})
			return
		}

		account, err := accounts.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to check admin status"})
			return
		}
		if !account.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		c.Set("is_admin", true)
		c.Next()
	}
}
