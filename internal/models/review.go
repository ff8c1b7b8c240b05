package models

import "time"

type Review struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	TitleID  uint      `gorm:"uniqueIndex:idx_reviews_title_author;not null" json:"-"`
	Title    *Title    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	AuthorID uint      `gorm:"uniqueIndex:idx_reviews_title_author;not null" json:"-"`
	Author   *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Score    int       `gorm:"not null" json:"score"`
	PubDate  time.Time `gorm:"autoCreateTime" json:"pub_date"`
}

type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	ReviewID uint      `gorm:"index;not null" json:"-"`
	Review   *Review   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	AuthorID uint      `gorm:"not null" json:"-"`
	Author   *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PubDate  time.Time `gorm:"autoCreateTime" json:"pub_date"`
}

type ReviewResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func (r *Review) ToResponse() ReviewResponse {
	resp := ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
	if r.Author != nil {
		resp.Author = r.Author.Username
	}
	return resp
}

type CommentResponse struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func (c *Comment) ToResponse() CommentResponse {
	resp := CommentResponse{
		ID:      c.ID,
		Text:    c.Text,
		PubDate: c.PubDate,
	}
	if c.Author != nil {
		resp.Author = c.Author.Username
	}
	return resp
}

type ReviewCreateRequest struct {
	Text  string `json:"text" binding:"required"`
	Score *int   `json:"score" binding:"required"`
}

type ReviewUpdateRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

type CommentCreateRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentUpdateRequest struct {
	Text *string `json:"text" binding:"required"`
}
