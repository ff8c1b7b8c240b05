package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"back_yamdb/internal/models"
	"back_yamdb/internal/repository"
)

type TitleHandler struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

func NewTitleHandler(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) *TitleHandler {
	return &TitleHandler{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

func (h *TitleHandler) ListTitles(c *gin.Context) {
	filter := repository.TitleFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
		Genre:    c.Query("genre"),
	}
	if rawYear := c.Query("year"); rawYear != "" {
		year, err := strconv.Atoi(rawYear)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Invalid year filter",
			})
			return
		}
		filter.Year = &year
	}

	page, pageSize := parsePagination(c)
	titles, total, err := h.titleRepo.ListTitles(filter, page, pageSize)
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
		"data":   titles,
	})
}

func (h *TitleHandler) GetTitle(c *gin.Context) {
	title, ok := h.lookupTitle(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, title)
}

func (h *TitleHandler) CreateTitle(c *gin.Context) {
	var req models.TitleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if req.Year > time.Now().Year() {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Year must not be in the future",
		})
		return
	}

	category, err := h.categoryRepo.FindCategoryBySlug(req.Category)
	if err != nil {
		h.respondSlugError(c, err)
		return
	}

	genres, err := h.genreRepo.FindGenresBySlugs(req.Genre)
	if err != nil {
		h.respondSlugError(c, err)
		return
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  &category.ID,
	}
	if err := h.titleRepo.CreateTitle(title, genres); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create title",
		})
		return
	}

	created, err := h.titleRepo.GetTitleByID(title.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to load created title",
		})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TitleHandler) UpdateTitle(c *gin.Context) {
	title, ok := h.lookupTitle(c)
	if !ok {
		return
	}

	var req models.TitleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if *req.Year > time.Now().Year() {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Year must not be in the future",
			})
			return
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := h.categoryRepo.FindCategoryBySlug(*req.Category)
		if err != nil {
			h.respondSlugError(c, err)
			return
		}
		title.CategoryID = &category.ID
	}

	var genres *[]models.Genre
	if req.Genre != nil {
		resolved, err := h.genreRepo.FindGenresBySlugs(*req.Genre)
		if err != nil {
			h.respondSlugError(c, err)
			return
		}
		genres = &resolved
	}

	if err := h.titleRepo.UpdateTitle(title, genres); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update title",
		})
		return
	}

	updated, err := h.titleRepo.GetTitleByID(title.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to load updated title",
		})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *TitleHandler) DeleteTitle(c *gin.Context) {
	title, ok := h.lookupTitle(c)
	if !ok {
		return
	}
	if err := h.titleRepo.DeleteTitle(title); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete title",
		})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TitleHandler) lookupTitle(c *gin.Context) (*models.Title, bool) {
	id, ok := parseUintParam(c, "title_id")
	if !ok {
		return nil, false
	}
	title, err := h.titleRepo.GetTitleByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrTitleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Title not found",
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
		})
		return nil, false
	}
	return title, true
}

// respondSlugError maps unresolvable category/genre slugs in a write payload
// to a validation error, anything else to a 500.
func (h *TitleHandler) respondSlugError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrCategoryNotFound) || errors.Is(err, repository.ErrGenreNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Unknown category or genre slug",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": "Database error",
	})
}
