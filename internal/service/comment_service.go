package service

import (
	"errors"
	"strings"

	"github.com/webestudio/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound      = errors.New("comment not found")
	ErrCommentFieldsMissing = errors.New("comment requires name, email and content")
	ErrCommentParentInvalid = errors.New("parent comment does not belong to the post")
)

// Moderation filters, mirroring the admin screen's tabs.
const (
	ModerationPending  = "pending"
	ModerationApproved = "approved"
	ModerationAll      = "all"
)

// CommentService wraps comment persistence, threading and moderation.
type CommentService struct {
	db *gorm.DB
}

// CommentInput represents a visitor-submitted comment. ParentID is nil
// for a top-level comment.
type CommentInput struct {
	PostID      uint
	ParentID    *uint
	AuthorName  string
	AuthorEmail string
	Content     string
}

// CommentNode is a comment plus its ordered replies. It is derived on
// every fetch and never persisted.
type CommentNode struct {
	db.Comment
	Replies []*CommentNode
}

// ModerationResult carries the unfiltered moderation list plus the
// counters shown in the admin header.
type ModerationResult struct {
	Comments     []db.Comment
	PendingCount int64
	TotalCount   int64
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb}
}

// Create stores a visitor comment. Comments always start unapproved;
// a parent reference must point at an existing comment on the same post.
func (s *CommentService) Create(input CommentInput) (*db.Comment, error) {
	name := strings.TrimSpace(input.AuthorName)
	email := strings.TrimSpace(input.AuthorEmail)
	content := strings.TrimSpace(input.Content)
	if name == "" || email == "" || content == "" {
		return nil, ErrCommentFieldsMissing
	}

	var post db.Post
	if err := s.db.First(&post, input.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if input.ParentID != nil {
		var parent db.Comment
		if err := s.db.First(&parent, *input.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCommentParentInvalid
			}
			return nil, err
		}
		if parent.PostID != input.PostID {
			return nil, ErrCommentParentInvalid
		}
	}

	comment := db.Comment{
		PostID:      input.PostID,
		ParentID:    input.ParentID,
		AuthorName:  name,
		AuthorEmail: email,
		Content:     content,
		Approved:    false,
	}

	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListApproved returns the approved comments of a post in creation order.
func (s *CommentService) ListApproved(postID uint) ([]db.Comment, error) {
	var comments []db.Comment
	if err := s.db.Where("post_id = ? AND approved = ?", postID, true).
		Order("created_at asc, id asc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// ApprovedTree fetches a post's approved comments and assembles the
// reply forest for display.
func (s *CommentService) ApprovedTree(postID uint) ([]*CommentNode, error) {
	comments, err := s.ListApproved(postID)
	if err != nil {
		return nil, err
	}
	return BuildTree(comments), nil
}

// BuildTree turns a flat, creation-ordered comment list into a forest.
// Each comment is appended either to the root list or to its parent's
// replies, preserving the relative order among siblings. A comment
// whose parent is absent from the input (for example a reply to a
// not-yet-approved comment) is dropped from the result.
func BuildTree(comments []db.Comment) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = &CommentNode{Comment: comments[i]}
	}

	roots := make([]*CommentNode, 0, len(comments))
	for i := range comments {
		node := nodes[comments[i].ID]
		if comments[i].ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*comments[i].ParentID]; ok {
			parent.Replies = append(parent.Replies, node)
		}
	}

	return roots
}

// CountTree returns the number of comments reachable in a forest.
func CountTree(nodes []*CommentNode) int {
	total := 0
	for _, node := range nodes {
		total += 1 + CountTree(node.Replies)
	}
	return total
}

// ListForModeration returns comments across all posts, newest first,
// optionally narrowed to pending or approved ones. The pending counter
// always reflects the whole table regardless of the filter.
func (s *CommentService) ListForModeration(filter string) (*ModerationResult, error) {
	query := s.db.Model(&db.Comment{}).Order("created_at desc, id desc")
	switch filter {
	case ModerationPending:
		query = query.Where("approved = ?", false)
	case ModerationApproved:
		query = query.Where("approved = ?", true)
	}

	result := &ModerationResult{}
	if err := query.Find(&result.Comments).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&db.Comment{}).Where("approved = ?", false).
		Count(&result.PendingCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&db.Comment{}).Count(&result.TotalCount).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// Approve flips a comment's approved flag and nothing else.
func (s *CommentService) Approve(id uint) error {
	result := s.db.Model(&db.Comment{}).Where("id = ?", id).Update("approved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// Delete removes exactly one comment row. Replies are left in place;
// they simply stop rendering because their parent is gone from every
// fetched set.
func (s *CommentService) Delete(id uint) error {
	result := s.db.Delete(&db.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
