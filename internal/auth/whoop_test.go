package auth_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthart-backend/internal/bootstrap"
	"healthart-backend/internal/shared/config"
	"healthart-backend/internal/shared/server/middleware"
)

// fakeWhoop serves the OAuth token endpoint and the recovery API together.
func fakeWhoop(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/oauth2/token":
			// assert, not require: this runs on the server goroutine.
			assert.Equal(t, http.MethodPost, r.Method)
			assert.NoError(t, r.ParseForm())
			// client_secret_post: credentials travel in the form body.
			assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
			assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"access_token":"granted-token","token_type":"Bearer","expires_in":3600,"refresh_token":"refresh"}`)
		case "/v1/recovery":
			fmt.Fprint(w, `{"records":[{"score":{"recovery_score":77}}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func authTestApp(t *testing.T, whoopURL, clientID string) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:              "0",
		Env:               "dev",
		CORSAllowOrigin:   []string{"http://localhost:3030"},
		WhoopClientID:     clientID,
		WhoopClientSecret: "client-secret",
		WhoopRedirectURL:  "http://127.0.0.1:3030/callback",
		WhoopAuthURL:      whoopURL + "/oauth/oauth2/auth",
		WhoopTokenURL:     whoopURL + "/oauth/oauth2/token",
		WhoopAPIBaseURL:   whoopURL,
		ArtModel:          "dall-e-3",
		SessionTTLHours:   1,
		ArtRatePerMinute:  6000,
		ArtRateBurst:      100,
	}

	app, err := bootstrap.Build(cfg)
	require.NoError(t, err)
	return app
}

func do(app *bootstrap.App, method, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func TestLoginRedirectsToWhoop(t *testing.T) {
	whoop := fakeWhoop(t)
	defer whoop.Close()

	app := authTestApp(t, whoop.URL, "client-id")

	resp := do(app, http.MethodGet, "/login")
	require.Equal(t, http.StatusFound, resp.Code)

	loc, err := url.Parse(resp.Header().Get("Location"))
	require.NoError(t, err)
	assert.Contains(t, loc.String(), whoop.URL+"/oauth/oauth2/auth")
	assert.Equal(t, "client-id", loc.Query().Get("client_id"))
	assert.NotEmpty(t, loc.Query().Get("state"))
	assert.Contains(t, loc.Query().Get("scope"), "read:recovery")
	assert.Contains(t, loc.Query().Get("scope"), "read:sleep")
}

func TestLoginNotConfigured(t *testing.T) {
	whoop := fakeWhoop(t)
	defer whoop.Close()

	app := authTestApp(t, whoop.URL, "")

	resp := do(app, http.MethodGet, "/login")
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "auth_not_configured")
}

func TestCallbackEstablishesSession(t *testing.T) {
	whoop := fakeWhoop(t)
	defer whoop.Close()

	app := authTestApp(t, whoop.URL, "client-id")

	login := do(app, http.MethodGet, "/login")
	require.Equal(t, http.StatusFound, login.Code)
	loc, err := url.Parse(login.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)

	callback := do(app, http.MethodGet, "/callback?state="+url.QueryEscape(state)+"&code=auth-code")
	require.Equal(t, http.StatusFound, callback.Code)
	assert.Equal(t, "/health_art", callback.Header().Get("Location"))

	var sessionCookie *http.Cookie
	for _, c := range callback.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "callback must set the session cookie")
	assert.True(t, sessionCookie.HttpOnly)

	// The established session is accepted by the page route.
	page := do(app, http.MethodGet, "/health_art", sessionCookie)
	assert.Equal(t, http.StatusOK, page.Code)

	// State is one-shot: replaying the callback is rejected.
	replay := do(app, http.MethodGet, "/callback?state="+url.QueryEscape(state)+"&code=auth-code")
	require.Equal(t, http.StatusBadRequest, replay.Code)
	assert.Contains(t, replay.Body.String(), "invalid or expired state")
}

func TestCallbackRejectsUnknownState(t *testing.T) {
	whoop := fakeWhoop(t)
	defer whoop.Close()

	app := authTestApp(t, whoop.URL, "client-id")

	resp := do(app, http.MethodGet, "/callback?state=forged&code=auth-code")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "invalid or expired state")
}

func TestCallbackRequiresStateAndCode(t *testing.T) {
	whoop := fakeWhoop(t)
	defer whoop.Close()

	app := authTestApp(t, whoop.URL, "client-id")

	resp := do(app, http.MethodGet, "/callback")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "missing state or code")
}
