package repository

import (
	"errors"
	"strings"

	"back_yamdb/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category slug already exists")
)

type CategoryRepository interface {
	CreateCategory(category *models.Category) error
	FindCategoryBySlug(slug string) (*models.Category, error)
	ListCategories(search string, page, pageSize int) ([]models.Category, int64, error)
	DeleteCategory(category *models.Category) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) CreateCategory(category *models.Category) error {
	err := r.db.Create(category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCategoryExists
		}
		return err
	}
	return nil
}

func (r *categoryRepo) FindCategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("slug = ?", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) ListCategories(search string, page, pageSize int) ([]models.Category, int64, error) {
	var categories []models.Category
	query := r.db.Model(&models.Category{})
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
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, total, nil
}

func (r *categoryRepo) DeleteCategory(category *models.Category) error {
	return r.db.Delete(category).Error
}
