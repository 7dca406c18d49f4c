package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/webestudio/internal/db"
	"github.com/webestudio/internal/service"
)

// commentForm is the visitor comment form on the blog detail page.
type commentForm struct {
	AuthorName  string `form:"author_name" binding:"required"`
	AuthorEmail string `form:"author_email" binding:"required,email"`
	Content     string `form:"content" binding:"required"`
	ParentID    string `form:"parent_id"`
}

// CreateComment stores a visitor comment for the post behind the slug.
// Comments always start unapproved and only show up once moderated.
func (a *API) CreateComment(c *gin.Context) {
	slug := c.Param("slug")
	post, err := a.posts.GetBySlug(slug)
	if err != nil {
		c.Redirect(http.StatusFound, "/blog")
		return
	}

	var form commentForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusFound, "/blog/"+post.Slug+"?comentario=error")
		return
	}

	var parentID *uint
	if trimmed := strings.TrimSpace(form.ParentID); trimmed != "" {
		parsed, err := strconv.ParseUint(trimmed, 10, 32)
		if err != nil {
			c.Redirect(http.StatusFound, "/blog/"+post.Slug+"?comentario=error")
			return
		}
		id := uint(parsed)
		parentID = &id
	}

	_, err = a.comments.Create(service.CommentInput{
		PostID:      post.ID,
		ParentID:    parentID,
		AuthorName:  form.AuthorName,
		AuthorEmail: form.AuthorEmail,
		Content:     form.Content,
	})
	if err != nil {
		c.Redirect(http.StatusFound, "/blog/"+post.Slug+"?comentario=error")
		return
	}

	c.Redirect(http.StatusFound, "/blog/"+post.Slug+"?comentario=enviado")
}

// ShowCommentAdmin renders the moderation screen: every comment
// regardless of approval, filterable to pending or approved, with the
// owning post's title resolved for context.
func (a *API) ShowCommentAdmin(c *gin.Context) {
	filter := c.DefaultQuery("filter", service.ModerationPending)

	result, err := a.comments.ListForModeration(filter)
	if err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "admin_comments.html", gin.H{
			"title": "Comentarios",
			"error": "No se pudieron cargar los comentarios",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "admin_comments.html", gin.H{
		"title":        "Comentarios",
		"filter":       filter,
		"comments":     result.Comments,
		"pendingCount": result.PendingCount,
		"totalCount":   result.TotalCount,
		"postTitles":   a.postTitles(result.Comments),
	})
}

// ApproveComment flips a comment's approved flag. The admin screen
// reloads the full list afterwards instead of patching local state.
func (a *API) ApproveComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.comments.Approve(id); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			respondError(c, http.StatusNotFound, "comentario no encontrado")
			return
		}
		respondError(c, http.StatusInternalServerError, "no se pudo aprobar el comentario")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comentario aprobado"})
}

// DeleteComment removes exactly one comment row; replies stay behind
// and simply disappear from the public tree.
func (a *API) DeleteComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.comments.Delete(id); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			respondError(c, http.StatusNotFound, "comentario no encontrado")
			return
		}
		respondError(c, http.StatusInternalServerError, "no se pudo eliminar el comentario")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comentario eliminado"})
}

// postTitles maps the post ids referenced by the given comments to
// their titles for the moderation screen.
func (a *API) postTitles(comments []db.Comment) map[uint]string {
	ids := make([]uint, 0, len(comments))
	seen := make(map[uint]bool, len(comments))
	for _, comment := range comments {
		if !seen[comment.PostID] {
			seen[comment.PostID] = true
			ids = append(ids, comment.PostID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var posts []db.Post
	if err := a.db.Select("id", "title").Where("id IN ?", ids).Find(&posts).Error; err != nil {
		return nil
	}

	titles := make(map[uint]string, len(posts))
	for _, post := range posts {
		titles[post.ID] = post.Title
	}
	return titles
}
