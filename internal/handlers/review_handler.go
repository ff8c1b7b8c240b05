package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"back_yamdb/internal/models"
	"back_yamdb/internal/permissions"
	"back_yamdb/internal/repository"
)

type ReviewHandler struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
	userRepo   repository.UserRepository
}

func NewReviewHandler(
	reviewRepo repository.ReviewRepository,
	titleRepo repository.TitleRepository,
	userRepo repository.UserRepository,
) *ReviewHandler {
	return &ReviewHandler{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
		userRepo:   userRepo,
	}
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	titleID, ok := h.resolveTitle(c)
	if !ok {
		return
	}

	page, pageSize := parsePagination(c)
	reviews, total, err := h.reviewRepo.ListReviews(titleID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
		})
		return
	}

	data := make([]models.ReviewResponse, len(reviews))
	for i := range reviews {
		data[i] = reviews[i].ToResponse()
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"count":  total,
		"data":   data,
	})
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	review, ok := h.lookupReview(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, review.ToResponse())
}

// CreateReview stores one review per (title, author); the author always comes
// from the token, never from the payload.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	titleID, ok := h.resolveTitle(c)
	if !ok {
		return
	}

	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}

	var req models.ReviewCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if *req.Score < 1 || *req.Score > 10 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Score must be between 1 and 10",
		})
		return
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: user.ID,
		Text:     req.Text,
		Score:    *req.Score,
	}
	if err := h.reviewRepo.CreateReview(review); err != nil {
		if errors.Is(err, repository.ErrReviewExists) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "You have already reviewed this title",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create review",
		})
		return
	}

	c.JSON(http.StatusCreated, review.ToResponse())
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	review, ok := h.lookupReview(c)
	if !ok {
		return
	}

	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}
	if !permissions.CanModifyContent(user, review.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "You may only edit your own reviews",
		})
		return
	}

	var req models.ReviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		if *req.Score < 1 || *req.Score > 10 {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Score must be between 1 and 10",
			})
			return
		}
		review.Score = *req.Score
	}

	if err := h.reviewRepo.UpdateReview(review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update review",
		})
		return
	}
	c.JSON(http.StatusOK, review.ToResponse())
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	review, ok := h.lookupReview(c)
	if !ok {
		return
	}

	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}
	if !permissions.CanModifyContent(user, review.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "You may only delete your own reviews",
		})
		return
	}

	if err := h.reviewRepo.DeleteReview(review); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete review",
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// resolveTitle checks the title path parameter against the catalog; a review
// route under a missing title is a 404.
func (h *ReviewHandler) resolveTitle(c *gin.Context) (uint, bool) {
	titleID, ok := parseUintParam(c, "title_id")
	if !ok {
		return 0, false
	}
	exists, err := h.titleRepo.TitleExists(titleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
		})
		return 0, false
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Title not found",
		})
		return 0, false
	}
	return titleID, true
}

func (h *ReviewHandler) lookupReview(c *gin.Context) (*models.Review, bool) {
	titleID, ok := h.resolveTitle(c)
	if !ok {
		return nil, false
	}
	reviewID, ok := parseUintParam(c, "review_id")
	if !ok {
		return nil, false
	}

	review, err := h.reviewRepo.GetReview(titleID, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Review not found",
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
		})
		return nil, false
	}
	return review, true
}
