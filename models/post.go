package models

import (
	"time"
)

type Post struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
	// CreatedAt is set by the server on insert and never written again
	// (the `<-:create` permission makes GORM skip it on updates).
	CreatedAt time.Time `gorm:"<-:create;index:idx_posts_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Text      string    `gorm:"not null;type:text" json:"text"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	// Deleting a group orphans its posts rather than deleting them.
	GroupID  *uint     `gorm:"index" json:"group_id,omitempty"`
	Group    *Group    `json:"group,omitempty" gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL"`
	ImageURL string    `gorm:"type:text" json:"image_url,omitempty"`
	Comments []Comment `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}
