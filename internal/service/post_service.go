package service

import (
	"errors"
	"strings"

	"github.com/webestudio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrPostTitleMissing = errors.New("post title is required")
	ErrPostSlugEmpty    = errors.New("title does not produce a usable slug")
	ErrSlugTaken        = errors.New("slug already in use")
)

// PostService wraps post related database operations.
type PostService struct {
	db *gorm.DB
}

// PostInput represents fields accepted when creating or updating a post.
// An empty Slug is derived from the title on create; on update an empty
// Slug keeps whatever the post already has, so an edited slug is never
// silently overwritten.
type PostInput struct {
	Title    string
	Slug     string
	Summary  string
	Content  string
	ImageURL string
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// ListAll returns all posts ordered by created time descending.
func (s *PostService) ListAll() ([]db.Post, error) {
	var posts []db.Post
	if err := s.db.Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Get fetches a post by id.
func (s *PostService) Get(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug fetches a post by its slug.
func (s *PostService) GetBySlug(slug string) (*db.Post, error) {
	var post db.Post
	if err := s.db.Where("slug = ?", strings.TrimSpace(slug)).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create persists a new post, deriving the slug from the title when
// none was provided.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrPostTitleMissing
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = DeriveSlug(title)
	}
	// A punctuation-only title derives nothing; an empty slug would
	// leave the post unreachable under /blog/:slug.
	if slug == "" {
		return nil, ErrPostSlugEmpty
	}

	if err := s.ensureSlugFree(slug, 0); err != nil {
		return nil, err
	}

	post := db.Post{
		Title:    title,
		Slug:     slug,
		Summary:  strings.TrimSpace(input.Summary),
		Content:  input.Content,
		ImageURL: strings.TrimSpace(input.ImageURL),
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, mapSlugConflict(err)
	}
	return &post, nil
}

// Update applies updates to an existing post. The stored slug only
// changes when the input carries a non-empty slug; a post that somehow
// has no slug yet gets one derived from the new title.
func (s *PostService) Update(id uint, input PostInput) (*db.Post, error) {
	var existing db.Post
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrPostTitleMissing
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = existing.Slug
	}
	if slug == "" {
		slug = DeriveSlug(title)
	}
	if slug == "" {
		return nil, ErrPostSlugEmpty
	}

	if err := s.ensureSlugFree(slug, existing.ID); err != nil {
		return nil, err
	}

	existing.Title = title
	existing.Slug = slug
	existing.Summary = strings.TrimSpace(input.Summary)
	existing.Content = input.Content
	existing.ImageURL = strings.TrimSpace(input.ImageURL)

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, mapSlugConflict(err)
	}
	return &existing, nil
}

// Delete removes a post by id.
func (s *PostService) Delete(id uint) error {
	return s.db.Delete(&db.Post{}, id).Error
}

// ensureSlugFree reports ErrSlugTaken when another post already owns
// the slug. The unique index remains the final arbiter; this check
// just yields a friendlier error for the common case.
func (s *PostService) ensureSlugFree(slug string, selfID uint) error {
	var count int64
	query := s.db.Model(&db.Post{}).Where("slug = ?", slug)
	if selfID != 0 {
		query = query.Where("id <> ?", selfID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugTaken
	}
	return nil
}

func mapSlugConflict(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrSlugTaken
	}
	return err
}
