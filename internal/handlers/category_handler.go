package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"back_yamdb/internal/models"
	"back_yamdb/internal/repository"
)

type CategoryHandler struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryHandler(categoryRepo repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categoryRepo: categoryRepo}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	page, pageSize := parsePagination(c)
	categories, total, err := h.categoryRepo.ListCategories(c.Query("search"), page, pageSize)
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
		"data":   categories,
	})
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if !slugPattern.MatchString(req.Slug) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Slug may contain only letters, digits, hyphens and underscores",
		})
		return
	}

	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := h.categoryRepo.CreateCategory(category); err != nil {
		if errors.Is(err, repository.ErrCategoryExists) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Category slug already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create category",
		})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	category, err := h.categoryRepo.FindCategoryBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Category not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
		})
		return
	}

	if err := h.categoryRepo.DeleteCategory(category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete category",
		})
		return
	}
	c.Status(http.StatusNoContent)
}
