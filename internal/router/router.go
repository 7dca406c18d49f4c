package router

import (
	"html/template"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/webestudio/internal/handler"
)

// SetupRouter configures the Gin engine and routes.
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	// An unhandled panic renders the error screen instead of an empty 500.
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"title": "Algo salió mal",
		})
	}))

	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("webestudio_session", store))

	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"mul": func(a, b int) int {
			return a * b
		},
	})
	r.LoadHTMLGlob("web/template/*.html")

	r.Static("/static", "./web/static")
	r.StaticFile("/sitemap.xml", "./public/sitemap.xml")

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Public marketing and blog routes
	r.GET("/", api.ShowHome)
	r.GET("/servicios", api.ShowPage("servicios", "Servicios"))
	r.GET("/sobre-mi", api.ShowPage("sobre-mi", "Sobre mí"))
	r.GET("/proyectos", api.ShowPage("proyectos", "Proyectos"))
	r.GET("/reparacion-web", api.ShowPage("reparacion-web", "Reparación Web"))
	r.GET("/experto-wordpress", api.ShowPage("experto-wordpress", "Experto WordPress"))
	r.GET("/contacto", api.ShowContact)
	r.GET("/blog", api.ShowBlog)
	r.GET("/blog/:slug", api.ShowBlogPost)
	r.POST("/blog/:slug/comentarios", api.CreateComment)

	r.GET("/login", api.ShowLoginPage)
	r.POST("/login", api.Login)
	r.GET("/logout", api.Logout)

	// Admin routes behind session auth
	admin := r.Group("/admin")
	admin.Use(handler.AuthRequired())
	{
		admin.GET("", api.ShowPostAdmin)
		admin.GET("/comentarios", api.ShowCommentAdmin)

		api2 := admin.Group("/api")
		{
			api2.GET("/posts", api.GetPosts)
			api2.GET("/posts/:id", api.GetPost)
			api2.POST("/posts", api.CreatePost)
			api2.PUT("/posts/:id", api.UpdatePost)
			api2.DELETE("/posts/:id", api.DeletePost)

			api2.POST("/comments/:id/approve", api.ApproveComment)
			api2.DELETE("/comments/:id", api.DeleteComment)

			api2.POST("/uploads", api.UploadImage)
			api2.GET("/uploads", api.GetUploads)

			api2.POST("/editor", api.ApplyEditorCommand)
			api2.POST("/assistant", api.DraftContent)
		}
	}

	return r
}
