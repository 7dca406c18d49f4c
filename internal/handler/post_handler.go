package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/webestudio/internal/service"
)

// postPayload is the JSON body accepted by the post API.
type postPayload struct {
	Title    string `json:"title" binding:"required"`
	Slug     string `json:"slug"`
	Summary  string `json:"summary"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

// ShowPostAdmin renders the admin post editor screen with the list of
// existing posts and the upload history for the image dialog.
func (a *API) ShowPostAdmin(c *gin.Context) {
	posts, err := a.posts.ListAll()
	if err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "admin_posts.html", gin.H{
			"title": "Artículos",
			"error": "No se pudieron cargar los artículos",
		})
		return
	}

	uploads, err := a.media.History(24)
	if err != nil {
		uploads = nil
	}

	a.renderHTML(c, http.StatusOK, "admin_posts.html", gin.H{
		"title":   "Artículos",
		"posts":   posts,
		"uploads": uploads,
		"widths":  imageWidthOptions(),
	})
}

// GetPosts returns all posts, newest first.
func (a *API) GetPosts(c *gin.Context) {
	posts, err := a.posts.ListAll()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudieron cargar los artículos")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPost returns a single post by id.
func (a *API) GetPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "artículo no encontrado")
			return
		}
		respondError(c, http.StatusInternalServerError, "no se pudo cargar el artículo")
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// CreatePost stores a new post. The slug is derived from the title
// when the payload does not carry one.
func (a *API) CreatePost(c *gin.Context) {
	var payload postPayload
	if !bindJSON(c, &payload, "datos de artículo inválidos") {
		return
	}

	post, err := a.posts.Create(service.PostInput{
		Title:    payload.Title,
		Slug:     payload.Slug,
		Summary:  payload.Summary,
		Content:  payload.Content,
		ImageURL: payload.ImageURL,
	})
	if err != nil {
		respondPostError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// UpdatePost applies changes to an existing post without ever
// regenerating a slug the author already edited.
func (a *API) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload postPayload
	if !bindJSON(c, &payload, "datos de artículo inválidos") {
		return
	}

	post, err := a.posts.Update(id, service.PostInput{
		Title:    payload.Title,
		Slug:     payload.Slug,
		Summary:  payload.Summary,
		Content:  payload.Content,
		ImageURL: payload.ImageURL,
	})
	if err != nil {
		respondPostError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeletePost removes a post.
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.posts.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo eliminar el artículo")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "artículo eliminado"})
}

// respondPostError distinguishes the duplicate-slug case from generic
// store failures, as the editor shows them differently.
func respondPostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, http.StatusNotFound, "artículo no encontrado")
	case errors.Is(err, service.ErrPostTitleMissing):
		respondError(c, http.StatusBadRequest, "el título es obligatorio")
	case errors.Is(err, service.ErrPostSlugEmpty):
		respondError(c, http.StatusBadRequest, "el título no produce un slug válido")
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, http.StatusConflict, "ya existe un artículo con ese slug")
	default:
		respondError(c, http.StatusInternalServerError, "no se pudo guardar el artículo")
	}
}
