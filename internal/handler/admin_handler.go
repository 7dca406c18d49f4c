package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/webestudio/internal/db"
	"golang.org/x/crypto/bcrypt"
)

// ShowLoginPage renders the login screen. A next parameter carries the
// originally requested destination through the login round trip.
func (a *API) ShowLoginPage(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "Acceso",
		"next":  safeReturnPath(c.Query("next")),
	})
}

// Login verifies the admin credential and starts a session, then sends
// the visitor back to where they were headed.
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := safeReturnPath(c.PostForm("next"))

	var user db.User
	if err := a.db.Where("username = ?", username).First(&user).Error; err != nil {
		a.renderHTML(c, http.StatusUnauthorized, "login.html", gin.H{
			"title": "Acceso",
			"next":  next,
			"error": "Usuario o contraseña incorrectos",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		a.renderHTML(c, http.StatusUnauthorized, "login.html", gin.H{
			"title": "Acceso",
			"next":  next,
			"error": "Usuario o contraseña incorrectos",
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "login.html", gin.H{
			"title": "Acceso",
			"next":  next,
			"error": "No se pudo guardar la sesión",
		})
		return
	}

	if next == "" {
		next = "/admin"
	}
	c.Redirect(http.StatusFound, next)
}

// Logout clears the session.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/login")
}

// AuthRequired gates the admin screens. Unauthenticated visitors are
// sent to the login page with their destination preserved in next.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			target := "/login?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// safeReturnPath keeps post-login redirects on this site.
func safeReturnPath(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "/") || strings.HasPrefix(trimmed, "//") {
		return ""
	}
	return trimmed
}
