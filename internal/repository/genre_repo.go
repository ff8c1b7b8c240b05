package repository

import (
	"errors"
	"strings"

	"back_yamdb/internal/models"

	"gorm.io/gorm"
)

var (
	ErrGenreNotFound = errors.New("genre not found")
	ErrGenreExists   = errors.New("genre slug already exists")
)

type GenreRepository interface {
	CreateGenre(genre *models.Genre) error
	FindGenreBySlug(slug string) (*models.Genre, error)
	FindGenresBySlugs(slugs []string) ([]models.Genre, error)
	ListGenres(search string, page, pageSize int) ([]models.Genre, int64, error)
	DeleteGenre(genre *models.Genre) error
}

type genreRepo struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepo{db: db}
}

func (r *genreRepo) CreateGenre(genre *models.Genre) error {
	err := r.db.Create(genre).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrGenreExists
		}
		return err
	}
	return nil
}

func (r *genreRepo) FindGenreBySlug(slug string) (*models.Genre, error) {
	var genre models.Genre
	err := r.db.Where("slug = ?", slug).First(&genre).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenreNotFound
		}
		return nil, err
	}
	return &genre, nil
}

// FindGenresBySlugs resolves every slug or fails: a single unknown slug is an
// ErrGenreNotFound for the whole batch.
func (r *genreRepo) FindGenresBySlugs(slugs []string) ([]models.Genre, error) {
	var genres []models.Genre
	if len(slugs) == 0 {
		return genres, nil
	}
	if err := r.db.Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, err
	}
	if len(genres) != len(slugs) {
		return nil, ErrGenreNotFound
	}
	return genres, nil
}

func (r *genreRepo) ListGenres(search string, page, pageSize int) ([]models.Genre, int64, error) {
	var genres []models.Genre
	query := r.db.Model(&models.Genre{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("slug").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&genres).Error
	if err != nil {
		return nil, 0, err
	}
	if genres == nil {
		genres = []models.Genre{}
	}
	return genres, total, nil
}

func (r *genreRepo) DeleteGenre(genre *models.Genre) error {
	return r.db.Delete(genre).Error
}
