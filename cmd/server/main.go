package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/webestudio/internal/config"
	"github.com/webestudio/internal/db"
	"github.com/webestudio/internal/handler"
	"github.com/webestudio/internal/router"
	"github.com/webestudio/internal/service"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Bootstrap the admin account from the environment when configured.
	if err := db.EnsureUser(cfg.AdminUserName, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to ensure admin user: %v", err)
	}

	media := service.NewMediaService(db.DB, cfg.MediaAPIBaseURL, cfg.MediaCloudName, cfg.MediaUploadPreset)
	assistant := service.NewAssistantService(cfg.AssistantAPIBaseURL, cfg.AssistantAPIKey, cfg.AssistantModels)
	api := handler.NewAPI(db.DB, media, assistant)

	r := router.SetupRouter(api, cfg.SessionSecret)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
