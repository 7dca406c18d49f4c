package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/webestudio/internal/service"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	pageSanitizer = bluemonday.UGCPolicy()

	// Comments are plain text; every tag is stripped before display.
	commentSanitizer = bluemonday.StrictPolicy()
)

// commentView is a comment tree node prepared for the template.
type commentView struct {
	ID         uint
	PostSlug   string
	AuthorName string
	CreatedAt  string
	Content    string
	Replies    []commentView
}

// ShowHome renders the public home page with the latest posts.
func (a *API) ShowHome(c *gin.Context) {
	posts, err := a.posts.ListAll()
	if err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "home.html", gin.H{
			"title": "Inicio",
			"error": "No se pudieron cargar los artículos",
		})
		return
	}

	if len(posts) > 3 {
		posts = posts[:3]
	}

	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title": "Inicio",
		"posts": posts,
	})
}

// ShowPage renders one of the marketing pages from its stored markdown.
func (a *API) ShowPage(slug, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := a.pages.GetBySlug(slug)
		if err != nil {
			a.renderHTML(c, http.StatusNotFound, "page.html", gin.H{
				"title": title,
				"error": "Página no encontrada",
			})
			return
		}

		a.renderHTML(c, http.StatusOK, "page.html", gin.H{
			"title":   page.Title,
			"summary": page.Summary,
			"content": renderMarkdown(page.Content),
		})
	}
}

// ShowContact renders the contact page.
func (a *API) ShowContact(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "contact.html", gin.H{
		"title": "Contacto",
	})
}

// ShowBlog renders the blog index, newest posts first.
func (a *API) ShowBlog(c *gin.Context) {
	posts, err := a.posts.ListAll()
	if err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "blog.html", gin.H{
			"title": "Blog",
			"error": "No se pudieron cargar los artículos",
		})
		return
	}

	a.renderHTML(c, http.StatusOK, "blog.html", gin.H{
		"title": "Blog",
		"posts": posts,
	})
}

// ShowBlogPost renders a post by slug together with its approved
// comment tree. The post body is author-authored HTML; headings get
// anchor ids feeding the jump list. Comments are plain text.
func (a *API) ShowBlogPost(c *gin.Context) {
	post, err := a.posts.GetBySlug(c.Param("slug"))
	if err != nil {
		a.renderHTML(c, http.StatusNotFound, "blog_post.html", gin.H{
			"title": "Artículo no encontrado",
			"error": "El artículo que buscas no existe",
		})
		return
	}

	tree, err := a.comments.ApprovedTree(post.ID)
	commentsError := ""
	if err != nil {
		tree = nil
		commentsError = "No se pudieron cargar los comentarios"
	}

	body, outline := service.BuildOutline(post.Content)

	a.renderHTML(c, http.StatusOK, "blog_post.html", gin.H{
		"title":         post.Title,
		"post":          post,
		"content":       template.HTML(body),
		"outline":       outline,
		"comments":      buildCommentViews(post.Slug, tree),
		"commentCount":  service.CountTree(tree),
		"commentStatus": c.Query("comentario"),
		"commentsError": commentsError,
	})
}

func buildCommentViews(slug string, nodes []*service.CommentNode) []commentView {
	views := make([]commentView, 0, len(nodes))
	for _, node := range nodes {
		views = append(views, commentView{
			ID:         node.ID,
			PostSlug:   slug,
			AuthorName: node.AuthorName,
			CreatedAt:  node.CreatedAt.Format("02/01/2006"),
			Content:    commentSanitizer.Sanitize(node.Content),
			Replies:    buildCommentViews(slug, node.Replies),
		})
	}
	return views
}

func renderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return ""
	}
	return template.HTML(pageSanitizer.SanitizeBytes(buf.Bytes()))
}
