package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"healthart-backend/internal/bootstrap"
	sharedauth "healthart-backend/internal/shared/auth"
	"healthart-backend/internal/shared/config"
	"healthart-backend/internal/shared/server"
	"healthart-backend/internal/shared/server/middleware"
)

func routerTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:              "0",
		Env:               "dev",
		CORSAllowOrigin:   []string{"http://localhost:3030"},
		WhoopClientID:     "client-id",
		WhoopClientSecret: "client-secret",
		WhoopRedirectURL:  "http://127.0.0.1:3030/callback",
		WhoopAuthURL:      "http://whoop.invalid/oauth/oauth2/auth",
		WhoopTokenURL:     "http://whoop.invalid/oauth/oauth2/token",
		WhoopAPIBaseURL:   "http://whoop.invalid",
		ArtModel:          "dall-e-3",
		SessionTTLHours:   1,
		ArtRatePerMinute:  6000,
		ArtRateBurst:      100,
	}

	app, err := bootstrap.Build(cfg)
	require.NoError(t, err)
	return app
}

func TestHealthEndpointIsPublic(t *testing.T) {
	app := routerTestApp(t)

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"ok":true}`, resp.Body.String())
}

func TestMetricsEndpointIsPublic(t *testing.T) {
	app := routerTestApp(t)

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "art_generation_started_total")
	assert.Contains(t, resp.Body.String(), "art_generation_duration_ms")
}

func TestMeRequiresSession(t *testing.T) {
	app := routerTestApp(t)

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))

	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestMeWithSession(t *testing.T) {
	app := routerTestApp(t)

	sess := app.Sessions.Create(&oauth2.Token{
		AccessToken: "at",
		Expiry:      time.Now().Add(time.Hour),
	})
	cookieVal, err := sharedauth.SignSession(sharedauth.Claims{SID: sess.ID})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: cookieVal})
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"authenticated":true`)
	assert.Contains(t, resp.Body.String(), sess.ID)
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	app := routerTestApp(t)

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))
}

func TestAddr(t *testing.T) {
	assert.Equal(t, ":3030", server.Addr(""))
	assert.Equal(t, ":9090", server.Addr("9090"))
	assert.Equal(t, ":9090", server.Addr(":9090"))
}
