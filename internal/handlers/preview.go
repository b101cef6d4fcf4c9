package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"mapposter-backend/internal/database"
	"mapposter-backend/internal/models"
)

const previewTemplateName = "preview.html"

var previewTemplate = template.Must(template.New(previewTemplateName).Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Map Poster Preview</title>
</head>
<body>
  <h1>Your map poster</h1>
  <ul>
    <li>Email: {{.Email}}</li>
    <li>Style: {{.MapStyle}}</li>
    <li>Size: {{.MapSize}}</li>
    {{if .TextFront}}<li>Front text: {{.TextFront}}</li>{{end}}
    {{if .TextBack}}<li>Back text: {{.TextBack}}</li>{{end}}
  </ul>
  {{if .Pins}}<h2>Pins</h2>
  <pre>{{.Pins}}</pre>{{end}}
  <p>Submitted {{.CreatedAt.Format "Jan 2, 2006 15:04 MST"}}</p>
</body>
</html>
`))

// RegisterTemplates installs the preview template on the engine.
func RegisterTemplates(engine *gin.Engine) {
	engine.SetHTMLTemplate(previewTemplate)
}

type previewData struct {
	Email     string
	MapStyle  string
	MapSize   string
	TextFront string
	TextBack  string
	Pins      string
	CreatedAt time.Time
}

type PreviewHandler struct {
	store OrderStore
}

func NewPreviewHandler(store OrderStore) *PreviewHandler {
	return &PreviewHandler{store: store}
}

// Show renders the public preview page for an order. The token is the only
// credential; an unknown token is a plain 404.
func (h *PreviewHandler) Show(c *gin.Context) {
	order, err := h.store.GetOrderByToken(c.Request.Context(), c.Param("token"))
	if errors.Is(err, database.ErrNotFound) {
		c.String(http.StatusNotFound, "preview not found")
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "storage error", Message: err.Error()})
		return
	}

	c.HTML(http.StatusOK, previewTemplateName, previewData{
		Email:     order.Email.String,
		MapStyle:  order.MapStyle.String,
		MapSize:   order.MapSize.String,
		TextFront: order.TextFront.String,
		TextBack:  order.TextBack.String,
		Pins:      string(order.Pins),
		CreatedAt: order.CreatedAt,
	})
}
