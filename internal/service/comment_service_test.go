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

func setupCommentServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:comment-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
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

func createCommentTestPost(t *testing.T, gdb *gorm.DB, slug string) *db.Post {
	t.Helper()
	post := db.Post{Title: "Artículo " + slug, Slug: slug}
	if err := gdb.Create(&post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return &post
}

func TestCommentService_CreateStartsUnapproved(t *testing.T) {
	gdb := setupCommentServiceTestDB(t)
	svc := NewCommentService(gdb)
	post := createCommentTestPost(t, gdb, "primero")

	comment, err := svc.Create(CommentInput{
		PostID:      post.ID,
		AuthorName:  "Lucía",
		AuthorEmail: "lucia@example.com",
		Content:     "Muy buen artículo",
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if comment.Approved {
		t.Fatal("new comments must start unapproved")
	}
	if comment.ParentID != nil {
		t.Fatal("expected top-level comment")
	}
}

func TestCommentService_CreateValidatesFields(t *testing.T) {
	gdb := setupCommentServiceTestDB(t)
	svc := NewCommentService(gdb)
	post := createCommentTestPost(t, gdb, "campos")

	_, err := svc.Create(CommentInput{PostID: post.ID, AuthorName: "Ana", AuthorEmail: "", Content: "hola"})
	if !errors.Is(err, ErrCommentFieldsMissing) {
		t.Fatalf("expected ErrCommentFieldsMissing, got %v", err)
	}
}

func TestCommentService_CreateRejectsForeignParent(t *testing.T) {
	gdb := setupCommentServiceTestDB(t)
	svc := NewCommentService(gdb)
	postA := createCommentTestPost(t, gdb, "post-a")
	postB := createCommentTestPost(t, gdb, "post-b")

	parent, err := svc.Create(CommentInput{
		PostID:      postA.ID,
		AuthorName:  "Ana",
		AuthorEmail: "ana@example.com",
		Content:     "comentario en A",
	})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}

	_, err = svc.Create(CommentInput{
		PostID:      postB.ID,
		ParentID:    &parent.ID,
		AuthorName:  "Eva",
		AuthorEmail: "eva@example.com",
		Content:     "respuesta cruzada",
	})
	if !errors.Is(err, ErrCommentParentInvalid) {
		t.Fatalf("expected ErrCommentParentInvalid, got %v", err)
	}

	missing := uint(9999)
	_, err = svc.Create(CommentInput{
		PostID:      postA.ID,
		ParentID:    &missing,
		AuthorName:  "Eva",
		AuthorEmail: "eva@example.com",
		Content:     "respuesta huérfana",
	})
	if !errors.Is(err, ErrCommentParentInvalid) {
		t.Fatalf("expected ErrCommentParentInvalid for missing parent, got %v", err)
	}
}

func newComment(id uint, parentID *uint) db.Comment {
	comment := db.Comment{PostID: 1, AuthorName: fmt.Sprintf("autor-%d", id), Content: "texto"}
	comment.ID = id
	comment.ParentID = parentID
	return comment
}

func TestBuildTree_PreservesSiblingOrder(t *testing.T) {
	one := uint(1)
	flat := []db.Comment{
		newComment(1, nil),
		newComment(2, &one),
		newComment(3, &one),
		newComment(4, nil),
	}

	roots := BuildTree(flat)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].ID != 1 || roots[1].ID != 4 {
		t.Fatalf("root order wrong: %d, %d", roots[0].ID, roots[1].ID)
	}
	if len(roots[0].Replies) != 2 {
		t.Fatalf("expected 2 replies, got %d", len(roots[0].Replies))
	}
	if roots[0].Replies[0].ID != 2 || roots[0].Replies[1].ID != 3 {
		t.Fatalf("reply order wrong: %d, %d", roots[0].Replies[0].ID, roots[0].Replies[1].ID)
	}
	if got := CountTree(roots); got != 4 {
		t.Fatalf("expected 4 nodes, got %d", got)
	}
}

func TestBuildTree_DropsOrphanedReplies(t *testing.T) {
	// Comment 2 replies to an absent (unapproved) parent 99 and comment
	// 3 replies to 2; only 2 vanishes, so 3 stays attached to it and is
	// unreachable too once counted through the forest.
	missing := uint(99)
	two := uint(2)
	flat := []db.Comment{
		newComment(1, nil),
		newComment(2, &missing),
		newComment(3, &two),
	}

	roots := BuildTree(flat)
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	if got := CountTree(roots); got != 1 {
		t.Fatalf("expected 1 reachable node, got %d", got)
	}
}

func TestBuildTree_EmptyInput(t *testing.T) {
	if roots := BuildTree(nil); len(roots) != 0 {
		t.Fatalf("expected empty forest, got %d roots", len(roots))
	}
}

func TestCommentService_ApprovedTreeHidesRepliesToPending(t *testing.T) {
	gdb := setupCommentServiceTestDB(t)
	svc := NewCommentService(gdb)
	post := createCommentTestPost(t, gdb, "arbol")

	pending, err := svc.Create(CommentInput{
		PostID:      post.ID,
		AuthorName:  "Ana",
		AuthorEmail: "ana@example.com",
		Content:     "pendiente",
	})
	if err != nil {
		t.Fatalf("create pending comment: %v", err)
	}

	reply, err := svc.Create(CommentInput{
		PostID:      post.ID,
		ParentID:    &pending.ID,
		AuthorName:  "Eva",
		AuthorEmail: "eva@example.com",
		Content:     "respuesta",
	})
	if err != nil {
		t.Fatalf("create reply: %v", err)
	}
	if err := svc.Approve(reply.ID); err != nil {
		t.Fatalf("approve reply: %v", err)
	}

	// The approved reply points at an unapproved parent, so it cannot
	// render until the parent is approved too.
	tree, err := svc.ApprovedTree(post.ID)
	if err != nil {
		t.Fatalf("approved tree: %v", err)
	}
	if CountTree(tree) != 0 {
		t.Fatalf("expected empty tree, got %d nodes", CountTree(tree))
	}

	if err := svc.Approve(pending.ID); err != nil {
		t.Fatalf("approve parent: %v", err)
	}
	tree, err = svc.ApprovedTree(post.ID)
	if err != nil {
		t.Fatalf("approved tree after approval: %v", err)
	}
	if CountTree(tree) != 2 {
		t.Fatalf("expected 2 nodes, got %d", CountTree(tree))
	}
	if len(tree) != 1 || len(tree[0].Replies) != 1 {
		t.Fatal("expected one root with one reply")
	}
}

func TestCommentService_ListForModeration(t *testing.T) {
	gdb := setupCommentServiceTestDB(t)
	svc := NewCommentService(gdb)
	post := createCommentTestPost(t, gdb, "moderacion")

	first, err := svc.Create(CommentInput{
		PostID:      post.ID,
		AuthorName:  "Ana",
		AuthorEmail: "ana@example.com",
		Content:     "uno",
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if _, err := svc.Create(CommentInput{
		PostID:      post.ID,
		AuthorName:  "Eva",
		AuthorEmail: "eva@example.com",
		Content:     "dos",
	}); err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if err := svc.Approve(first.ID); err != nil {
		t.Fatalf("approve comment: %v", err)
	}

	all, err := svc.ListForModeration(ModerationAll)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(all.Comments))
	}
	if all.PendingCount != 1 {
		t.Fatalf("expected 1 pending, got %d", all.PendingCount)
	}
	if all.TotalCount != 2 {
		t.Fatalf("expected total 2, got %d", all.TotalCount)
	}

	pending, err := svc.ListForModeration(ModerationPending)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending.Comments) != 1 || pending.Comments[0].Approved {
		t.Fatal("pending filter returned wrong rows")
	}
	// The counter ignores the filter.
	if pending.PendingCount != 1 || pending.TotalCount != 2 {
		t.Fatalf("counters wrong: %d pending, %d total", pending.PendingCount, pending.TotalCount)
	}

	approved, err := svc.ListForModeration(ModerationApproved)
	if err != nil {
		t.Fatalf("list approved: %v", err)
	}
	if len(approved.Comments) != 1 || !approved.Comments[0].Approved {
		t.Fatal("approved filter returned wrong rows")
	}
}

func TestCommentService_ApproveFlipsOnlyFlag(t *testing.T) {
	gdb := setupCommentServiceTestDB(t)
	svc := NewCommentService(gdb)
	post := createCommentTestPost(t, gdb, "aprobar")

	comment, err := svc.Create(CommentInput{
		PostID:      post.ID,
		AuthorName:  "Ana",
		AuthorEmail: "ana@example.com",
		Content:     "contenido original",
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := svc.Approve(comment.ID); err != nil {
		t.Fatalf("approve comment: %v", err)
	}

	var stored db.Comment
	if err := gdb.First(&stored, comment.ID).Error; err != nil {
		t.Fatalf("reload comment: %v", err)
	}
	if !stored.Approved {
		t.Fatal("comment not approved")
	}
	if stored.Content != "contenido original" || stored.AuthorName != "Ana" {
		t.Fatal("approve must not change other fields")
	}

	if err := svc.Approve(9999); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestCommentService_DeleteRemovesSingleRow(t *testing.T) {
	gdb := setupCommentServiceTestDB(t)
	svc := NewCommentService(gdb)
	post := createCommentTestPost(t, gdb, "borrar")

	parent, err := svc.Create(CommentInput{
		PostID:      post.ID,
		AuthorName:  "Ana",
		AuthorEmail: "ana@example.com",
		Content:     "padre",
	})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	child, err := svc.Create(CommentInput{
		PostID:      post.ID,
		ParentID:    &parent.ID,
		AuthorName:  "Eva",
		AuthorEmail: "eva@example.com",
		Content:     "respuesta",
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if err := svc.Approve(parent.ID); err != nil {
		t.Fatalf("approve parent: %v", err)
	}
	if err := svc.Approve(child.ID); err != nil {
		t.Fatalf("approve child: %v", err)
	}

	if err := svc.Delete(parent.ID); err != nil {
		t.Fatalf("delete parent: %v", err)
	}

	// No cascade: the reply row survives but drops out of the tree.
	var remaining int64
	if err := gdb.Model(&db.Comment{}).Count(&remaining).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("expected 1 remaining comment, got %d", remaining)
	}

	tree, err := svc.ApprovedTree(post.ID)
	if err != nil {
		t.Fatalf("approved tree: %v", err)
	}
	if CountTree(tree) != 0 {
		t.Fatalf("orphaned reply still rendered: %d nodes", CountTree(tree))
	}

	if err := svc.Delete(parent.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound on repeat delete, got %v", err)
	}
}
