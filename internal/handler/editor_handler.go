package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/webestudio/internal/editor"
)

// editorPayload carries one editor command: the current HTML fragment,
// the saved selection offsets and the dialog fields the command needs.
// Each request is independent; the returned fragment replaces the
// caller's copy.
type editorPayload struct {
	HTML      string `json:"html"`
	Selection struct {
		Start int `json:"start"`
		End   int `json:"end"`
	} `json:"selection"`
	Command string `json:"command" binding:"required"`
	Block   string `json:"block"`
	Link    struct {
		URL    string `json:"url"`
		Text   string `json:"text"`
		Title  string `json:"title"`
		NewTab bool   `json:"new_tab"`
	} `json:"link"`
	Image struct {
		Src   string `json:"src"`
		Alt   string `json:"alt"`
		Title string `json:"title"`
		Width string `json:"width"`
	} `json:"image"`
}

// ApplyEditorCommand runs one rich-text command against the posted
// fragment and returns the transformed HTML.
func (a *API) ApplyEditorCommand(c *gin.Context) {
	var payload editorPayload
	if !bindJSON(c, &payload, "comando de editor inválido") {
		return
	}

	doc := editor.NewDocument(payload.HTML)
	sel := editor.Selection{Start: payload.Selection.Start, End: payload.Selection.End}

	var err error
	switch payload.Command {
	case "bold":
		err = doc.Bold(sel)
	case "italic":
		err = doc.Italic(sel)
	case "block":
		err = doc.FormatBlock(sel, payload.Block)
	case "list":
		err = doc.InsertList(sel)
	case "code":
		err = doc.InsertCodeBlock(sel)
	case "link":
		err = doc.InsertLink(sel, editor.LinkData{
			URL:    payload.Link.URL,
			Text:   payload.Link.Text,
			Title:  payload.Link.Title,
			NewTab: payload.Link.NewTab,
		})
	case "image":
		err = doc.InsertImage(sel, editor.ImageData{
			Src:   payload.Image.Src,
			Alt:   payload.Image.Alt,
			Title: payload.Image.Title,
			Width: payload.Image.Width,
		})
	case "update-image":
		err = doc.UpdateImage(sel, editor.ImageData{
			Src:   payload.Image.Src,
			Alt:   payload.Image.Alt,
			Title: payload.Image.Title,
			Width: payload.Image.Width,
		})
	default:
		respondError(c, http.StatusBadRequest, "comando desconocido")
		return
	}

	if err != nil {
		respondError(c, editorErrorStatus(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"html": doc.HTML()})
}

func editorErrorStatus(err error) int {
	switch {
	case errors.Is(err, editor.ErrSelectionInvalid),
		errors.Is(err, editor.ErrLinkURLMissing),
		errors.Is(err, editor.ErrImageSrcMissing),
		errors.Is(err, editor.ErrWidthInvalid),
		errors.Is(err, editor.ErrNotAnImage):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

func imageWidthOptions() []string {
	return editor.ImageWidths
}
