package models

import (
	"time"
)

// Template is a public post template with an attached image. Unlike posts,
// templates are standalone rows shared by every user.
type Template struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	ImagePath string    `json:"imagePath"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
