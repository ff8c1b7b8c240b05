package handlers

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"

	"back_yamdb/internal/middleware"
	"back_yamdb/internal/models"
	"back_yamdb/internal/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// parseUintParam reads a numeric path parameter. A malformed id behaves like
// a missing resource.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Resource not found",
		})
		return 0, false
	}
	return uint(id), true
}

// currentUser loads the record of the authenticated caller. Writes the 401
// response itself when the caller cannot be resolved.
func currentUser(c *gin.Context, userRepo repository.UserRepository) (*models.User, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "User not authenticated",
		})
		return nil, false
	}

	user, err := userRepo.FindUserByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "User not found",
		})
		return nil, false
	}
	return user, true
}
