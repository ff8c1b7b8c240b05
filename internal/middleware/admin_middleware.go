package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"back_yamdb/internal/permissions"
	"back_yamdb/internal/repository"
)

// AdminMiddleware must run after JWTMiddleware. It loads the user record and
// rejects callers that are neither admins nor superusers.
func AdminMiddleware(userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "User not authenticated",
			})
			c.Abort()
			return
		}

		user, err := userRepo.FindUserByID(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "User not found",
			})
			c.Abort()
			return
		}

		if !permissions.AdminOnly(user) {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Admin access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOrReadOnlyMiddleware leaves safe methods open to everyone and
// restricts writes to admins. Mount it after OptionalJWTMiddleware so
// authenticated callers are already identified.
func AdminOrReadOnlyMiddleware(userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if permissions.AdminOrReadOnly(nil, c.Request.Method) {
			c.Next()
			return
		}

		userID, ok := UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "User not authenticated",
			})
			c.Abort()
			return
		}

		user, err := userRepo.FindUserByID(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "User not found",
			})
			c.Abort()
			return
		}

		if !permissions.AdminOrReadOnly(user, c.Request.Method) {
			c.JSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Admin access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
