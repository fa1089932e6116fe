package models

import (
	"time"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"<-:create;index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Text      string    `gorm:"not null;type:text" json:"text"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Post      Post      `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
