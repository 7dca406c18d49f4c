package db

import "gorm.io/gorm"

// Page represents a standalone marketing page such as Services or About.
// Content is markdown, rendered to HTML at request time.
type Page struct {
	gorm.Model
	Slug    string `gorm:"uniqueIndex;not null"`
	Title   string `gorm:"not null"`
	Summary string
	Content string `gorm:"type:text"`
}
