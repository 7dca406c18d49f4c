package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/webestudio/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	posts     *service.PostService
	comments  *service.CommentService
	pages     *service.PageService
	media     *service.MediaService
	assistant *service.AssistantService
	siteName  string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, media *service.MediaService, assistant *service.AssistantService) *API {
	return &API{
		db:        db,
		posts:     service.NewPostService(db),
		comments:  service.NewCommentService(db),
		pages:     service.NewPageService(db),
		media:     media,
		assistant: assistant,
		siteName:  "Webestudio",
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Media exposes the media service, mainly so tests can swap the
// outbound HTTP client.
func (a *API) Media() *service.MediaService {
	return a.media
}

// Assistant exposes the drafting assistant for the same reason.
func (a *API) Assistant() *service.AssistantService {
	return a.assistant
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = a.siteName
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = time.Now().Year()
	}
	c.HTML(status, template, payload)
}
