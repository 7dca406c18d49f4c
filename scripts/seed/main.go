package main

import (
	"fmt"
	"log"

	"github.com/webestudio/internal/config"
	"github.com/webestudio/internal/db"
	"github.com/webestudio/internal/service"
)

// Seeds the database with the admin account, the marketing pages and a
// couple of demo posts with threaded comments.
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := db.EnsureUser("admin", "admin123"); err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}

	seedPages()
	seedPosts()

	fmt.Println("Datos de ejemplo generados")
	fmt.Println("Usuario: admin (contraseña: admin123)")
}

func seedPages() {
	pages := service.NewPageService(db.DB)

	seeds := []struct {
		Slug    string
		Title   string
		Content string
	}{
		{
			Slug:  "servicios",
			Title: "Servicios",
			Content: `## Diseño web a medida

Sitios rápidos, accesibles y pensados para posicionar.

## Mantenimiento y soporte

Actualizaciones, copias de seguridad y monitorización continua.

## Optimización SEO

Auditorías técnicas y contenido orientado a buscadores.`,
		},
		{
			Slug:  "sobre-mi",
			Title: "Sobre mí",
			Content: `Llevo más de diez años construyendo sitios web para pequeños
negocios. Me gusta el trabajo artesanal: cada proyecto empieza con una
conversación y termina con un sitio que el cliente puede mantener.`,
		},
		{
			Slug:  "proyectos",
			Title: "Proyectos",
			Content: `## Últimos trabajos

- Tienda online para una librería de barrio
- Web corporativa para un estudio de arquitectura
- Blog gastronómico con más de mil visitas diarias`,
		},
		{
			Slug:  "reparacion-web",
			Title: "Reparación Web",
			Content: `¿Tu sitio se ha roto tras una actualización? Diagnostico y
reparo webs caídas, lentas o hackeadas, con informe incluido.`,
		},
		{
			Slug:  "experto-wordpress",
			Title: "Experto WordPress",
			Content: `Migraciones, plantillas a medida y optimización de rendimiento
para WordPress, sin plugins innecesarios.`,
		},
	}

	for _, seed := range seeds {
		if _, err := pages.Save(seed.Slug, seed.Title, seed.Content); err != nil {
			log.Printf("could not seed page %s: %v", seed.Slug, err)
		}
	}
}

func seedPosts() {
	posts := service.NewPostService(db.DB)
	comments := service.NewCommentService(db.DB)

	var count int64
	db.DB.Model(&db.Post{}).Count(&count)
	if count > 0 {
		fmt.Println("Ya existen artículos, se omite la creación")
		return
	}

	first, err := posts.Create(service.PostInput{
		Title:   "5 Tendencias de Diseño Web para 2026",
		Summary: "Las corrientes que marcarán los próximos proyectos.",
		Content: "<h2>Menos es más</h2><p>El diseño minimalista sigue ganando terreno.</p>",
	})
	if err != nil {
		log.Printf("could not seed post: %v", err)
		return
	}

	if _, err := posts.Create(service.PostInput{
		Title:   "Por qué tu negocio necesita un blog",
		Summary: "El contenido propio sigue siendo la mejor inversión en SEO.",
		Content: "<p>Un blog activo multiplica las visitas orgánicas.</p>",
	}); err != nil {
		log.Printf("could not seed post: %v", err)
	}

	root, err := comments.Create(service.CommentInput{
		PostID:      first.ID,
		AuthorName:  "Lucía",
		AuthorEmail: "lucia@example.com",
		Content:     "Muy interesante, ¿aplica también a tiendas online?",
	})
	if err != nil {
		log.Printf("could not seed comment: %v", err)
		return
	}
	if err := comments.Approve(root.ID); err != nil {
		log.Printf("could not approve comment: %v", err)
	}

	if _, err := comments.Create(service.CommentInput{
		PostID:      first.ID,
		ParentID:    &root.ID,
		AuthorName:  "Marcos",
		AuthorEmail: "marcos@example.com",
		Content:     "A mí me funcionó en mi tienda, confirmo.",
	}); err != nil {
		log.Printf("could not seed reply: %v", err)
	}
}
