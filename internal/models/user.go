package models

import "time"

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID               uint      `gorm:"primaryKey" json:"-"`
	Username         string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email            string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName        string    `gorm:"size:150" json:"first_name"`
	LastName         string    `gorm:"size:150" json:"last_name"`
	Bio              string    `gorm:"type:text" json:"bio"`
	Role             string    `gorm:"type:varchar(20);default:'user'" json:"role"`
	ConfirmationCode string    `gorm:"size:10" json:"-"`
	IsSuperuser      bool      `json:"-"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`

	// Relationships
	Reviews  []Review  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Comments []Comment `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

type SignUpRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"required,email,max=254"`
}

type TokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserCreateRequest struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email,max=254"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Bio       string `json:"bio"`
	Role      string `json:"role" binding:"omitempty,oneof=user moderator admin"`
}

// UserUpdateRequest carries partial updates; nil means "leave unchanged".
type UserUpdateRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=150"`
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" binding:"omitempty,oneof=user moderator admin"`
}
