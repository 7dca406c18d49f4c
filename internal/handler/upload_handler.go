package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/webestudio/internal/service"
)

// UploadImage forwards an uploaded file to the external media endpoint
// and records the returned public URL in the upload history. Failures
// are reported inline; nothing is retried.
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no se encontró la imagen"})
		return
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "solo se permiten imágenes"})
		return
	}

	source, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo leer el archivo"})
		return
	}
	defer source.Close()

	data, err := io.ReadAll(source)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no se pudo leer el archivo"})
		return
	}

	// Unique remote name so repeated uploads never collide.
	ext := filepath.Ext(file.Filename)
	remoteName := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)

	upload, err := a.media.Upload(c.Request.Context(), remoteName, data)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, service.ErrMediaNotConfigured) || errors.Is(err, service.ErrMediaFileMissing) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": "error subiendo la imagen"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":    upload.URL,
		"width":  upload.Width,
		"height": upload.Height,
	})
}

// GetUploads returns the upload history for the editor's image dialog.
func (a *API) GetUploads(c *gin.Context) {
	uploads, err := a.media.History(50)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo cargar el historial")
		return
	}
	c.JSON(http.StatusOK, gin.H{"uploads": uploads})
}
