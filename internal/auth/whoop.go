package auth

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"healthart-backend/internal/sessions"
	sharedauth "healthart-backend/internal/shared/auth"
	"healthart-backend/internal/shared/server/middleware"
	"healthart-backend/internal/shared/server/respond"
	"healthart-backend/internal/shared/telemetry"
)

// WhoopService handles the WHOOP OAuth flow.
type WhoopService struct {
	oauthConfig *oauth2.Config
	sessions    *sessions.Store
	sessionTTL  time.Duration
	stateTTL    time.Duration
	stateStore  *stateStore
}

// NewWhoopService builds a WhoopService.
func NewWhoopService(clientID, clientSecret, redirectURL, authURL, tokenURL string, store *sessions.Store, sessionTTL time.Duration) *WhoopService {
	return &WhoopService{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"read:profile",
				"read:recovery",
				"read:workout",
				"read:sleep",
			},
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
				// WHOOP's token endpoint wants client_secret_post,
				// not HTTP basic auth.
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		sessions:   store,
		sessionTTL: sessionTTL,
		stateTTL:   5 * time.Minute,
		stateStore: newStateStore(),
	}
}

// OAuthConfig exposes the config so API clients can refresh tokens with it.
func (s *WhoopService) OAuthConfig() *oauth2.Config {
	return s.oauthConfig
}

// RegisterRoutes attaches the login and callback routes.
func (s *WhoopService) RegisterRoutes(r *gin.Engine) {
	r.GET("/login", s.login)
	r.GET("/callback", s.callback)
}

func (s *WhoopService) login(c *gin.Context) {
	if s.oauthConfig.ClientID == "" || s.oauthConfig.ClientSecret == "" || s.oauthConfig.RedirectURL == "" {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "WHOOP auth not configured", nil)
		return
	}

	state := uuid.NewString()
	s.stateStore.put(state, time.Now().Add(s.stateTTL))

	url := s.oauthConfig.AuthCodeURL(state)
	telemetry.Info("auth.login", map[string]any{"state": state})
	c.Redirect(http.StatusFound, url)
}

func (s *WhoopService) callback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}

	if !s.stateStore.consume(state) {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	ctx := c.Request.Context()
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		telemetry.Error("auth.exchange_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "auth_failed", "Authentication failed", nil)
		return
	}

	sess := s.sessions.Create(token)
	cookie, err := sharedauth.SignSession(sharedauth.Claims{
		SID: sess.ID,
		Exp: time.Now().UTC().Add(s.sessionTTL).Unix(),
	})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue session", nil)
		return
	}

	c.SetCookie(middleware.SessionCookieName, cookie, int(s.sessionTTL/time.Second), "/", "", false, true)
	c.Redirect(http.StatusFound, "/health_art")
}

type stateStore struct {
	items map[string]time.Time
	mu    sync.Mutex
}

func newStateStore() *stateStore {
	return &stateStore{items: make(map[string]time.Time)}
}

func (s *stateStore) put(state string, exp time.Time) {
	s.mu.Lock()
	s.items[state] = exp
	s.mu.Unlock()
}

func (s *stateStore) consume(state string) bool {
	s.mu.Lock()
	exp, ok := s.items[state]
	if ok {
		delete(s.items, state)
	}
	s.mu.Unlock()
	if !ok {
		return false
	}
	if time.Now().After(exp) {
		return false
	}
	return true
}
