package service

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/webestudio/internal/db"
	"gorm.io/gorm"
)

// staticPages is the fixed marketing surface listed in the sitemap.
var staticPages = []struct {
	Path     string
	Priority string
}{
	{Path: "/", Priority: "1.00"},
	{Path: "/servicios", Priority: "0.80"},
	{Path: "/sobre-mi", Priority: "0.80"},
	{Path: "/contacto", Priority: "0.80"},
	{Path: "/blog", Priority: "0.80"},
	{Path: "/proyectos", Priority: "0.80"},
	{Path: "/reparacion-web", Priority: "0.80"},
	{Path: "/experto-wordpress", Priority: "0.80"},
}

// SitemapService builds the sitemap.xml artifact from the fixed
// marketing routes plus one entry per post.
type SitemapService struct {
	db      *gorm.DB
	baseURL string
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// NewSitemapService creates a SitemapService for the given public base URL.
func NewSitemapService(gdb *gorm.DB, baseURL string) *SitemapService {
	return &SitemapService{db: gdb, baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

// Generate renders the sitemap XML. Post entries carry a lastmod date
// derived from the post's creation time, newest first.
func (s *SitemapService) Generate() ([]byte, error) {
	var posts []db.Post
	if err := s.db.Select("slug", "created_at").
		Order("created_at desc").
		Find(&posts).Error; err != nil {
		return nil, err
	}

	set := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, page := range staticPages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.baseURL + page.Path,
			ChangeFreq: "weekly",
			Priority:   page.Priority,
		})
	}
	for _, post := range posts {
		if strings.TrimSpace(post.Slug) == "" {
			continue
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/blog/%s", s.baseURL, post.Slug),
			LastMod:    post.CreatedAt.Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "0.64",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

// WriteFile generates the sitemap and writes it to path, creating the
// parent directory when needed.
func (s *SitemapService) WriteFile(path string) error {
	body, err := s.Generate()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, body, 0o644)
}
