package models

import (
	"time"
)

// Group is a named community that posts may optionally be assigned to.
// The slug is the immutable public identifier used in URLs.
type Group struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `gorm:"not null;type:varchar(200)" json:"title"`
	Slug        string    `gorm:"uniqueIndex;not null;type:varchar(200)" json:"slug"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Posts       []Post    `json:"-" gorm:"foreignKey:GroupID"`
}
