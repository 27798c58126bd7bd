package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"healthart-backend/internal/art"
	"healthart-backend/internal/shared/server/middleware"
	"healthart-backend/internal/shared/server/respond"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/favicon.ico
var favicon []byte

// Handler serves the rendered pages.
type Handler struct {
	Art       *art.Service
	templates *template.Template
}

// NewHandler parses the embedded templates and constructs a Handler.
func NewHandler(artSvc *art.Service) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{Art: artSvc, templates: tmpl}, nil
}

// RegisterRoutes attaches the page routes to the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.index)
	r.GET("/health_art", h.healthArt)
	r.GET("/favicon.ico", h.favicon)
}

func (h *Handler) index(c *gin.Context) {
	h.render(c, "index.html", nil)
}

type healthArtData struct {
	RecoveryScore string
	TierClass     string
}

func (h *Handler) healthArt(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	score, err := h.Art.RecoveryScore(c.Request.Context(), sess)
	if err != nil {
		if errors.Is(err, art.ErrRecoveryUnavailable) {
			respond.Error(c, http.StatusBadGateway, "recovery_unavailable", "Failed to fetch recovery data", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
		return
	}

	h.render(c, "health_art.html", healthArtData{
		RecoveryScore: art.FormatScore(score),
		TierClass:     art.Tier(score),
	})
}

func (h *Handler) favicon(c *gin.Context) {
	c.Data(http.StatusOK, "image/x-icon", favicon)
}

func (h *Handler) render(c *gin.Context, name string, data any) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := h.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		// Headers are already written; nothing to do but log.
		_ = c.Error(err)
	}
}
