package main

import (
	"fmt"
	"log"

	"github.com/webestudio/internal/config"
	"github.com/webestudio/internal/db"
	"github.com/webestudio/internal/service"
)

// Build-time sitemap generator: queries every post slug and writes the
// sitemap.xml artifact next to the other static files.
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	sitemaps := service.NewSitemapService(db.DB, cfg.SiteBaseURL)
	if err := sitemaps.WriteFile(cfg.SitemapPath); err != nil {
		log.Fatalf("failed to write sitemap: %v", err)
	}

	var postCount int64
	db.DB.Model(&db.Post{}).Count(&postCount)

	fmt.Println("Sitemap generado con éxito")
	fmt.Printf("Entradas dinámicas: %d\n", postCount)
	fmt.Printf("Guardado en %s\n", cfg.SitemapPath)
}
