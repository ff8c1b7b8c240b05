package repository

import (
	"errors"

	"back_yamdb/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrReviewExists   = errors.New("review by this author already exists for this title")
)

type ReviewRepository interface {
	CreateReview(review *models.Review) error
	GetReview(titleID, reviewID uint) (*models.Review, error)
	ListReviews(titleID uint, page, pageSize int) ([]models.Review, int64, error)
	UpdateReview(review *models.Review) error
	DeleteReview(review *models.Review) error
}

type reviewRepo struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

// CreateReview relies on the (title_id, author_id) unique index rather than a
// read-then-write check, so concurrent duplicate submissions still collapse
// to one review.
func (r *reviewRepo) CreateReview(review *models.Review) error {
	err := r.db.Create(review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReviewExists
		}
		return err
	}
	return r.db.Preload("Author").First(review, review.ID).Error
}

func (r *reviewRepo) GetReview(titleID, reviewID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Author").
		Where("title_id = ?", titleID).
		First(&review, reviewID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepo) ListReviews(titleID uint, page, pageSize int) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{}).Where("title_id = ?", titleID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.Preload("Author").
		Order("score").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, total, nil
}

func (r *reviewRepo) UpdateReview(review *models.Review) error {
	return r.db.Model(review).Select("Text", "Score").Updates(review).Error
}

func (r *reviewRepo) DeleteReview(review *models.Review) error {
	return r.db.Delete(review).Error
}
