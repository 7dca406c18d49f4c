package db

import "gorm.io/gorm"

// MediaUpload records a previously uploaded image's public URL so it
// can be reused from the editor's history list. Posts do not reference
// these rows; it is a denormalized upload history.
type MediaUpload struct {
	gorm.Model
	URL    string `gorm:"not null"`
	Width  int
	Height int
}
