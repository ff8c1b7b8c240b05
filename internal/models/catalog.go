package models

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"-"`
	Name string `gorm:"size:100;index;not null" json:"name"`
	Slug string `gorm:"uniqueIndex;size:50;not null" json:"slug"`
}

type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"-"`
	Name string `gorm:"size:100;index;not null" json:"name"`
	Slug string `gorm:"uniqueIndex;size:50;not null" json:"slug"`
}

type Title struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;index;not null" json:"name"`
	Year        int       `gorm:"not null" json:"year"`
	Description *string   `gorm:"type:text" json:"description"`
	CategoryID  *uint     `json:"-"`
	Category    *Category `gorm:"constraint:OnDelete:SET NULL" json:"category"`
	Genres      []Genre   `gorm:"many2many:genre_titles" json:"genre"`

	// Mean of the review scores, recomputed on every read. Null when the
	// title has no reviews yet.
	Rating *float64 `gorm:"-" json:"rating"`
}

// GenreTitle is the explicit join model between genres and titles. Deleting
// either side removes only the join rows.
type GenreTitle struct {
	GenreID uint  `gorm:"primaryKey" json:"-"`
	TitleID uint  `gorm:"primaryKey" json:"-"`
	Genre   Genre `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Title   Title `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Slug string `json:"slug" binding:"required,max=50"`
}

type GenreRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Slug string `json:"slug" binding:"required,max=50"`
}

type TitleCreateRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description"`
	Category    string   `json:"category" binding:"required"`
	Genre       []string `json:"genre" binding:"required"`
}

type TitleUpdateRequest struct {
	Name        *string   `json:"name" binding:"omitempty,max=200"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}
