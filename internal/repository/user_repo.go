package repository

import (
	"errors"
	"strings"

	"back_yamdb/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username or email already exists")
)

type UserRepository interface {
	CreateUser(user *models.User) error
	FindUserByID(id uint) (*models.User, error)
	FindUserByUsername(username string) (*models.User, error)
	ListUsers(search string, page, pageSize int) ([]models.User, int64, error)
	UpdateUser(user *models.User) error
	DeleteUser(user *models.User) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(user *models.User) error {
	err := r.db.Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return err
	}
	return nil
}

func (r *userRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) ListUsers(search string, page, pageSize int) ([]models.User, int64, error) {
	var users []models.User
	query := r.db.Model(&models.User{})
	if search != "" {
		query = query.Where("LOWER(username) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("username").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, total, nil
}

func (r *userRepo) UpdateUser(user *models.User) error {
	err := r.db.Save(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return err
	}
	return nil
}

func (r *userRepo) DeleteUser(user *models.User) error {
	return r.db.Delete(user).Error
}
