package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/webestudio/internal/service"
)

type assistantPayload struct {
	Prompt string `json:"prompt"`
}

// DraftContent asks the assistant for an HTML fragment on the given
// topic; the editor appends the result to the current content.
func (a *API) DraftContent(c *gin.Context) {
	var payload assistantPayload
	if !bindJSON(c, &payload, "petición inválida") {
		return
	}

	html, err := a.assistant.Draft(c.Request.Context(), payload.Prompt)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssistantPromptMissing):
			respondError(c, http.StatusBadRequest, "escribe un tema para el asistente")
		case errors.Is(err, service.ErrAssistantNotConfigured):
			respondError(c, http.StatusServiceUnavailable, "el asistente no está configurado")
		default:
			respondError(c, http.StatusBadGateway, "el asistente no pudo generar el borrador")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"html": html})
}
