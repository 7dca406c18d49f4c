package db

import "gorm.io/gorm"

// Post is a blog article. Content holds a trusted HTML fragment
// produced by the admin editor and is rendered without sanitization.
type Post struct {
	gorm.Model
	Title    string `gorm:"not null"`
	Slug     string `gorm:"uniqueIndex;not null"`
	Summary  string
	Content  string `gorm:"type:text"`
	ImageURL string
}
