package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig collects the settings required to run the service.
type AppConfig struct {
	ListenAddr        string
	Port              string
	DatabasePath      string
	SessionSecret     string
	GinMode           string
	SiteBaseURL       string
	SitemapPath       string
	MediaCloudName    string
	MediaUploadPreset string
	MediaAPIBaseURL   string
	AdminUserName     string
	AdminPassword     string

	AssistantAPIBaseURL string
	AssistantAPIKey     string
	AssistantModels     []string
}

// Load reads the application config from the environment, with safe
// defaults for anything missing. A .env file in the working directory
// is applied first when present.
func Load() AppConfig {
	// Missing .env is fine; real environment variables still win.
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "webestudio.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "webestudio-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	siteBaseURL := strings.TrimSpace(os.Getenv("SITE_BASE_URL"))
	if siteBaseURL == "" {
		siteBaseURL = "https://www.webestudio.dev"
	}

	sitemapPath := strings.TrimSpace(os.Getenv("SITEMAP_PATH"))
	if sitemapPath == "" {
		sitemapPath = "public/sitemap.xml"
	}

	mediaCloudName := strings.TrimSpace(os.Getenv("MEDIA_CLOUD_NAME"))
	mediaUploadPreset := strings.TrimSpace(os.Getenv("MEDIA_UPLOAD_PRESET"))
	if mediaUploadPreset == "" {
		mediaUploadPreset = "blog_upload"
	}

	mediaAPIBaseURL := strings.TrimSpace(os.Getenv("MEDIA_API_BASE_URL"))
	if mediaAPIBaseURL == "" {
		mediaAPIBaseURL = "https://api.cloudinary.com/v1_1"
	}

	adminUserName := strings.TrimSpace(os.Getenv("ADMIN_USER_NAME"))
	adminPassword := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD"))

	assistantBaseURL := strings.TrimSpace(os.Getenv("ASSISTANT_API_BASE_URL"))
	if assistantBaseURL == "" {
		assistantBaseURL = "https://api.openai.com/v1"
	}
	assistantAPIKey := strings.TrimSpace(os.Getenv("ASSISTANT_API_KEY"))

	assistantModels := splitList(os.Getenv("ASSISTANT_MODELS"))
	if len(assistantModels) == 0 {
		assistantModels = []string{"gpt-4o-mini", "gpt-4o"}
	}

	return AppConfig{
		ListenAddr:        listenAddr,
		Port:              port,
		DatabasePath:      databasePath,
		SessionSecret:     sessionSecret,
		GinMode:           ginMode,
		SiteBaseURL:       siteBaseURL,
		SitemapPath:       sitemapPath,
		MediaCloudName:    mediaCloudName,
		MediaUploadPreset: mediaUploadPreset,
		MediaAPIBaseURL:   mediaAPIBaseURL,
		AdminUserName:     adminUserName,
		AdminPassword:     adminPassword,

		AssistantAPIBaseURL: assistantBaseURL,
		AssistantAPIKey:     assistantAPIKey,
		AssistantModels:     assistantModels,
	}
}

// splitList parses a comma separated env value, dropping empties.
func splitList(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
