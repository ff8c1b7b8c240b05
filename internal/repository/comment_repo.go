package repository

import (
	"errors"

	"back_yamdb/internal/models"

	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetComment(reviewID, commentID uint) (*models.Comment, error)
	ListComments(reviewID uint, page, pageSize int) ([]models.Comment, int64, error)
	UpdateComment(comment *models.Comment) error
	DeleteComment(comment *models.Comment) error
}

type commentRepo struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepo{db: db}
}

func (r *commentRepo) CreateComment(comment *models.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return err
	}
	return r.db.Preload("Author").First(comment, comment.ID).Error
}

func (r *commentRepo) GetComment(reviewID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").
		Where("review_id = ?", reviewID).
		First(&comment, commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepo) ListComments(reviewID uint, page, pageSize int) ([]models.Comment, int64, error) {
	query := r.db.Model(&models.Comment{}).Where("review_id = ?", reviewID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := query.Preload("Author").
		Order("pub_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, total, nil
}

func (r *commentRepo) UpdateComment(comment *models.Comment) error {
	return r.db.Model(comment).Select("Text").Updates(comment).Error
}

func (r *commentRepo) DeleteComment(comment *models.Comment) error {
	return r.db.Delete(comment).Error
}
