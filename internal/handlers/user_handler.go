package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"back_yamdb/internal/models"
	"back_yamdb/internal/permissions"
	"back_yamdb/internal/repository"
)

type UserHandler struct {
	userRepo repository.UserRepository
}

func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	page, pageSize := parsePagination(c)
	users, total, err := h.userRepo.ListUsers(c.Query("search"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"count":  total,
		"data":   users,
	})
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req models.UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if strings.EqualFold(req.Username, "me") {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": `Username "me" is not allowed`,
		})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}

	if err := h.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Such username or email already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create user",
		})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, ok := h.lookupUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	user, ok := h.lookupUser(c)
	if !ok {
		return
	}

	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	// Admin endpoint: the role field is honored.
	if ok := h.applyUpdate(c, user, &req, true); !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	user, ok := h.lookupUser(c)
	if !ok {
		return
	}
	if err := h.userRepo.DeleteUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete user",
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the profile of the authenticated caller.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe lets the caller edit their own profile. The role field is
// silently dropped for non-admins rather than rejected.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}

	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if ok := h.applyUpdate(c, user, &req, permissions.CanChangeRole(user)); !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) lookupUser(c *gin.Context) (*models.User, bool) {
	user, err := h.userRepo.FindUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "User not found",
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
		})
		return nil, false
	}
	return user, true
}

func (h *UserHandler) applyUpdate(c *gin.Context, user *models.User, req *models.UserUpdateRequest, allowRole bool) bool {
	if req.Username != nil {
		if strings.EqualFold(*req.Username, "me") {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": `Username "me" is not allowed`,
			})
			return false
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil && allowRole {
		user.Role = *req.Role
	}

	if err := h.userRepo.UpdateUser(user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Such username or email already exists",
			})
			return false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update user",
		})
		return false
	}
	return true
}
