package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthart-backend/internal/shared/server/middleware"
	"healthart-backend/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", meHandler)
}

func meHandler(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid session", nil)
		return
	}

	response := gin.H{
		"authenticated": true,
		"sessionId":     sess.ID,
	}
	if sess.Token != nil && !sess.Token.Expiry.IsZero() {
		response["tokenExpiry"] = sess.Token.Expiry.UTC()
	}

	respond.JSON(c, http.StatusOK, response)
}
