package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // Don't expose password hash in JSON
	Posts     []Post    `json:"-" gorm:"foreignKey:AuthorID"`
	Comments  []Comment `json:"-" gorm:"foreignKey:AuthorID"`
}
