package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/webestudio/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPostServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:post-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Post{}, &db.Comment{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func TestPostService_CreateDerivesSlug(t *testing.T) {
	svc := NewPostService(setupPostServiceTestDB(t))

	post, err := svc.Create(PostInput{
		Title:   "5 Tendencias de Diseño Web!",
		Summary: "resumen",
		Content: "<p>contenido</p>",
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.Slug != "5-tendencias-de-diseno-web" {
		t.Fatalf("expected derived slug, got %q", post.Slug)
	}
}

func TestPostService_CreateKeepsProvidedSlug(t *testing.T) {
	svc := NewPostService(setupPostServiceTestDB(t))

	post, err := svc.Create(PostInput{Title: "Un título", Slug: "mi-slug-editado"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.Slug != "mi-slug-editado" {
		t.Fatalf("expected provided slug, got %q", post.Slug)
	}
}

func TestPostService_CreateRejectsDuplicateSlug(t *testing.T) {
	svc := NewPostService(setupPostServiceTestDB(t))

	if _, err := svc.Create(PostInput{Title: "Primero", Slug: "repetido"}); err != nil {
		t.Fatalf("create first post: %v", err)
	}
	if _, err := svc.Create(PostInput{Title: "Segundo", Slug: "repetido"}); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestPostService_CreateRequiresTitle(t *testing.T) {
	svc := NewPostService(setupPostServiceTestDB(t))

	if _, err := svc.Create(PostInput{Title: "   "}); !errors.Is(err, ErrPostTitleMissing) {
		t.Fatalf("expected ErrPostTitleMissing, got %v", err)
	}
}

func TestPostService_CreateRejectsUnderivableSlug(t *testing.T) {
	svc := NewPostService(setupPostServiceTestDB(t))

	// A punctuation-only title derives an empty slug; the post must be
	// rejected instead of stored unreachable, and a second attempt must
	// fail the same way rather than report a slug conflict.
	if _, err := svc.Create(PostInput{Title: "¡¡¡!!!"}); !errors.Is(err, ErrPostSlugEmpty) {
		t.Fatalf("expected ErrPostSlugEmpty, got %v", err)
	}
	if _, err := svc.Create(PostInput{Title: "¿¿¿???"}); !errors.Is(err, ErrPostSlugEmpty) {
		t.Fatalf("expected ErrPostSlugEmpty on repeat, got %v", err)
	}

	var count int64
	if err := svc.db.Model(&db.Post{}).Count(&count).Error; err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no stored posts, got %d", count)
	}
}

func TestPostService_UpdateKeepsSlugWhenOnlyTitleChanges(t *testing.T) {
	svc := NewPostService(setupPostServiceTestDB(t))

	post, err := svc.Create(PostInput{Title: "Título original", Slug: "slug-editado"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	updated, err := svc.Update(post.ID, PostInput{Title: "Título completamente nuevo"})
	if err != nil {
		t.Fatalf("update post: %v", err)
	}
	if updated.Slug != "slug-editado" {
		t.Fatalf("slug was altered on title-only edit: %q", updated.Slug)
	}
	if updated.Title != "Título completamente nuevo" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
}

func TestPostService_UpdateDerivesSlugWhenMissing(t *testing.T) {
	gdb := setupPostServiceTestDB(t)
	svc := NewPostService(gdb)

	post, err := svc.Create(PostInput{Title: "Con slug"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	// Simulate a legacy row without slug.
	if err := gdb.Model(&db.Post{}).Where("id = ?", post.ID).Update("slug", "").Error; err != nil {
		t.Fatalf("clear slug: %v", err)
	}

	updated, err := svc.Update(post.ID, PostInput{Title: "Nuevo Título"})
	if err != nil {
		t.Fatalf("update post: %v", err)
	}
	if updated.Slug != "nuevo-titulo" {
		t.Fatalf("expected derived slug, got %q", updated.Slug)
	}
}

func TestPostService_GetBySlug(t *testing.T) {
	svc := NewPostService(setupPostServiceTestDB(t))

	created, err := svc.Create(PostInput{Title: "Buscado", Slug: "buscado"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	found, err := svc.GetBySlug("buscado")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected post %d, got %d", created.ID, found.ID)
	}

	if _, err := svc.GetBySlug("no-existe"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_ListAllNewestFirst(t *testing.T) {
	gdb := setupPostServiceTestDB(t)
	svc := NewPostService(gdb)

	old := db.Post{Title: "Viejo", Slug: "viejo"}
	old.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := db.Post{Title: "Reciente", Slug: "reciente"}
	recent.CreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if err := gdb.Create(&old).Error; err != nil {
		t.Fatalf("create old post: %v", err)
	}
	if err := gdb.Create(&recent).Error; err != nil {
		t.Fatalf("create recent post: %v", err)
	}

	posts, err := svc.ListAll()
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].Slug != "reciente" {
		t.Fatalf("expected newest first, got %q", posts[0].Slug)
	}
}

func TestPostService_Delete(t *testing.T) {
	gdb := setupPostServiceTestDB(t)
	svc := NewPostService(gdb)

	post, err := svc.Create(PostInput{Title: "Para borrar"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if err := svc.Delete(post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if _, err := svc.Get(post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound after delete, got %v", err)
	}
}
