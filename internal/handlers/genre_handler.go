package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"back_yamdb/internal/models"
	"back_yamdb/internal/repository"
)

type GenreHandler struct {
	genreRepo repository.GenreRepository
}

func NewGenreHandler(genreRepo repository.GenreRepository) *GenreHandler {
	return &GenreHandler{genreRepo: genreRepo}
}

func (h *GenreHandler) ListGenres(c *gin.Context) {
	page, pageSize := parsePagination(c)
	genres, total, err := h.genreRepo.ListGenres(c.Query("search"), page, pageSize)
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
		"data":   genres,
	})
}

func (h *GenreHandler) CreateGenre(c *gin.Context) {
	var req models.GenreRequest
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

	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := h.genreRepo.CreateGenre(genre); err != nil {
		if errors.Is(err, repository.ErrGenreExists) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "Genre slug already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create genre",
		})
		return
	}

	c.JSON(http.StatusCreated, genre)
}

func (h *GenreHandler) DeleteGenre(c *gin.Context) {
	genre, err := h.genreRepo.FindGenreBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrGenreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Genre not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
		})
		return
	}

	if err := h.genreRepo.DeleteGenre(genre); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete genre",
		})
		return
	}
	c.Status(http.StatusNoContent)
}
