package art

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"healthart-backend/internal/shared/server/middleware"
	"healthart-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches art routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/art", h.generate)
}

type generateResponse struct {
	ImageData string `json:"image_data"`
}

func (h *Handler) generate(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid session", nil)
		return
	}

	image, err := h.Svc.Generate(c.Request.Context(), sess)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecoveryUnavailable):
			respond.Error(c, http.StatusBadGateway, "recovery_unavailable", "Failed to fetch recovery data", nil)
		case errors.Is(err, ErrGenerationFailed):
			respond.Error(c, http.StatusBadGateway, "generation_failed", "Failed to generate AI art", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
		}
		return
	}

	// An empty payload is a 200: the page decides how to surface it.
	respond.OK(c, generateResponse{ImageData: image})
}
