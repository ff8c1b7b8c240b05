package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"back_yamdb/internal/config"
	"back_yamdb/internal/models"
	"back_yamdb/internal/repository"
	"back_yamdb/internal/services"
)

type AuthHandler struct {
	userRepo repository.UserRepository
	email    services.EmailService
	config   *config.Config
}

func NewAuthHandler(userRepo repository.UserRepository, email services.EmailService) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		email:    email,
		config:   config.GlobalConfig,
	}
}

// Signup registers a user and emails a confirmation code. The code is never
// part of the response.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	// "me" is reserved for the self-profile route.
	if strings.EqualFold(req.Username, "me") {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": `Username "me" is not allowed`,
		})
		return
	}

	code, err := services.GenerateConfirmationCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate confirmation code",
		})
		return
	}

	user := &models.User{
		Username:         req.Username,
		Email:            req.Email,
		Role:             models.RoleUser,
		ConfirmationCode: code,
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

	// The user record stays even when dispatch fails; the code can be
	// re-requested through support tooling.
	if err := h.email.SendConfirmationCode(user.Email, code); err != nil {
		log.Printf("[Signup] email dispatch failed for %s: %v", user.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"email":    user.Email,
	})
}

// Token exchanges a confirmation code for an access token. The code is
// compared, not consumed: a repeated exchange with the same code succeeds.
func (h *AuthHandler) Token(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	user, err := h.userRepo.FindUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
		})
		return
	}

	if user.ConfirmationCode == "" || req.ConfirmationCode != user.ConfirmationCode {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid confirmation code",
		})
		return
	}

	token, err := h.generateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to generate token",
		})
		return
	}

	c.JSON(http.StatusCreated, models.TokenResponse{Token: token})
}

func (h *AuthHandler) generateJWT(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour * 24 * 7).Unix(), // 7 days
		"iat":     time.Now().Unix(),
	})

	return token.SignedString([]byte(h.config.JWTSecret))
}
