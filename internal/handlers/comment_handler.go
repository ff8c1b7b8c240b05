package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"back_yamdb/internal/models"
	"back_yamdb/internal/permissions"
	"back_yamdb/internal/repository"
)

type CommentHandler struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
	titleRepo   repository.TitleRepository
	userRepo    repository.UserRepository
}

func NewCommentHandler(
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
	titleRepo repository.TitleRepository,
	userRepo repository.UserRepository,
) *CommentHandler {
	return &CommentHandler{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
		titleRepo:   titleRepo,
		userRepo:    userRepo,
	}
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	review, ok := h.resolveReview(c)
	if !ok {
		return
	}

	page, pageSize := parsePagination(c)
	comments, total, err := h.commentRepo.ListComments(review.ID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
		})
		return
	}

	data := make([]models.CommentResponse, len(comments))
	for i := range comments {
		data[i] = comments[i].ToResponse()
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"count":  total,
		"data":   data,
	})
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	comment, ok := h.lookupComment(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, comment.ToResponse())
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	review, ok := h.resolveReview(c)
	if !ok {
		return
	}

	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}

	var req models.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	comment := &models.Comment{
		ReviewID: review.ID,
		AuthorID: user.ID,
		Text:     req.Text,
	}
	if err := h.commentRepo.CreateComment(comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create comment",
		})
		return
	}

	c.JSON(http.StatusCreated, comment.ToResponse())
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	comment, ok := h.lookupComment(c)
	if !ok {
		return
	}

	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}
	if !permissions.CanModifyContent(user, comment.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "You may only edit your own comments",
		})
		return
	}

	var req models.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	comment.Text = *req.Text
	if err := h.commentRepo.UpdateComment(comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update comment",
		})
		return
	}
	c.JSON(http.StatusOK, comment.ToResponse())
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	comment, ok := h.lookupComment(c)
	if !ok {
		return
	}

	user, ok := currentUser(c, h.userRepo)
	if !ok {
		return
	}
	if !permissions.CanModifyContent(user, comment.AuthorID) {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "You may only delete your own comments",
		})
		return
	}

	if err := h.commentRepo.DeleteComment(comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete comment",
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// resolveReview validates the whole nested path: the title must exist and the
// review must belong to it.
func (h *CommentHandler) resolveReview(c *gin.Context) (*models.Review, bool) {
	titleID, ok := parseUintParam(c, "title_id")
	if !ok {
		return nil, false
	}
	exists, err := h.titleRepo.TitleExists(titleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
		})
		return nil, false
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Title not found",
		})
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

func (h *CommentHandler) lookupComment(c *gin.Context) (*models.Comment, bool) {
	review, ok := h.resolveReview(c)
	if !ok {
		return nil, false
	}
	commentID, ok := parseUintParam(c, "comment_id")
	if !ok {
		return nil, false
	}

	comment, err := h.commentRepo.GetComment(review.ID, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Comment not found",
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
		})
		return nil, false
	}
	return comment, true
}
