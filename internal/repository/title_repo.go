package repository

import (
	"errors"
	"strings"

	"back_yamdb/internal/models"

	"gorm.io/gorm"
)

var ErrTitleNotFound = errors.New("title not found")

type TitleFilter struct {
	Name     string
	Year     *int
	Category string
	Genre    string
}

type TitleRepository interface {
	CreateTitle(title *models.Title, genres []models.Genre) error
	GetTitleByID(id uint) (*models.Title, error)
	ListTitles(filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	UpdateTitle(title *models.Title, genres *[]models.Genre) error
	DeleteTitle(title *models.Title) error
	TitleExists(id uint) (bool, error)
}

type titleRepo struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepo{db: db}
}

func (r *titleRepo) CreateTitle(title *models.Title, genres []models.Genre) error {
	title.Genres = genres
	return r.db.Create(title).Error
}

func (r *titleRepo) GetTitleByID(id uint) (*models.Title, error) {
	var title models.Title
	err := r.db.Preload("Category").Preload("Genres").First(&title, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}
	if err := r.loadRatings([]*models.Title{&title}); err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepo) filteredQuery(filter TitleFilter) *gorm.DB {
	query := r.db.Model(&models.Title{})

	if filter.Name != "" {
		query = query.Where("LOWER(titles.name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Year != nil {
		query = query.Where("titles.year = ?", *filter.Year)
	}
	if filter.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.Category)
	}
	if filter.Genre != "" {
		query = query.Joins("JOIN genre_titles ON genre_titles.title_id = titles.id").
			Joins("JOIN genres ON genres.id = genre_titles.genre_id").
			Where("genres.slug = ?", filter.Genre)
	}
	return query
}

func (r *titleRepo) ListTitles(filter TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var total int64
	if err := r.filteredQuery(filter).Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var titles []models.Title
	err := r.filteredQuery(filter).
		Select("titles.*").
		Preload("Category").
		Preload("Genres").
		Order("titles.name").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}
	if titles == nil {
		titles = []models.Title{}
	}

	refs := make([]*models.Title, len(titles))
	for i := range titles {
		refs[i] = &titles[i]
	}
	if err := r.loadRatings(refs); err != nil {
		return nil, 0, err
	}
	return titles, total, nil
}

// loadRatings computes the mean review score per title in one aggregate
// query. Ratings are never stored; a title without reviews keeps a nil
// rating.
func (r *titleRepo) loadRatings(titles []*models.Title) error {
	if len(titles) == 0 {
		return nil
	}
	ids := make([]uint, len(titles))
	for i, t := range titles {
		ids[i] = t.ID
	}

	type titleRating struct {
		TitleID uint
		Rating  float64
	}
	var rows []titleRating
	err := r.db.Model(&models.Review{}).
		Select("title_id, AVG(score) AS rating").
		Where("title_id IN ?", ids).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	byID := make(map[uint]float64, len(rows))
	for _, row := range rows {
		byID[row.TitleID] = row.Rating
	}
	for _, t := range titles {
		if rating, ok := byID[t.ID]; ok {
			value := rating
			t.Rating = &value
		}
	}
	return nil
}

func (r *titleRepo) UpdateTitle(title *models.Title, genres *[]models.Genre) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(title).Select("Name", "Year", "Description", "CategoryID").Updates(title).Error; err != nil {
			return err
		}
		if genres != nil {
			if err := tx.Model(title).Association("Genres").Replace(*genres); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *titleRepo) DeleteTitle(title *models.Title) error {
	return r.db.Delete(title).Error
}

func (r *titleRepo) TitleExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Title{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
