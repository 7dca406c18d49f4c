package db

import "gorm.io/gorm"

// Comment is a threaded remark on a post. ParentID is nil for
// top-level comments. New comments always start unapproved and only
// become publicly visible once an admin flips Approved.
type Comment struct {
	gorm.Model
	PostID      uint  `gorm:"not null;index"`
	ParentID    *uint `gorm:"index"`
	AuthorName  string
	AuthorEmail string
	Content     string `gorm:"type:text"`
	Approved    bool   `gorm:"default:false"`
}
