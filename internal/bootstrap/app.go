package bootstrap

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"healthart-backend/internal/art"
	whoopauth "healthart-backend/internal/auth"
	"healthart-backend/internal/llm"
	openai "healthart-backend/internal/llm/openai"
	"healthart-backend/internal/services/health"
	"healthart-backend/internal/sessions"
	"healthart-backend/internal/shared/config"
	"healthart-backend/internal/shared/metrics"
	"healthart-backend/internal/shared/server"
	"healthart-backend/internal/web"
	"healthart-backend/internal/whoop"
)

// App holds shared dependencies.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	Sessions      *sessions.Store
	Metrics       *metrics.Metrics
	WhoopAuth     *whoopauth.WhoopService
	WhoopClients  *whoop.ClientFactory
	ImageClient   llm.ImageClient
	ArtService    *art.Service
	ArtHandler    *art.Handler
	HealthService *health.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	store := sessions.NewStore(sessionTTL)

	whoopAuth := whoopauth.NewWhoopService(
		cfg.WhoopClientID,
		cfg.WhoopClientSecret,
		cfg.WhoopRedirectURL,
		cfg.WhoopAuthURL,
		cfg.WhoopTokenURL,
		store,
		sessionTTL,
	)

	whoopClients := &whoop.ClientFactory{
		BaseURL: cfg.WhoopAPIBaseURL,
		OAuth:   whoopAuth.OAuthConfig(),
	}

	imageClient := llm.ImageClient(llm.PlaceholderClient{})
	if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		openaiClient, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.ArtModel)
		if err != nil {
			return nil, err
		}
		imageClient = openaiClient
	}

	m := metrics.New()

	artSvc := &art.Service{
		Whoop:    whoopClients,
		Sessions: store,
		Image:    imageClient,
		Metrics:  m,
		Size:     cfg.ArtSize,
		Quality:  cfg.ArtQuality,
	}
	artHandler := art.NewHandler(artSvc)

	webHandler, err := web.NewHandler(artSvc)
	if err != nil {
		return nil, err
	}

	healthSvc := health.NewService()

	app := &App{
		Config:        cfg,
		Sessions:      store,
		Metrics:       m,
		WhoopAuth:     whoopAuth,
		WhoopClients:  whoopClients,
		ImageClient:   imageClient,
		ArtService:    artSvc,
		ArtHandler:    artHandler,
		HealthService: healthSvc,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:     cfg,
		Health:     healthSvc,
		Metrics:    m,
		WhoopAuth:  whoopAuth,
		ArtHandler: artHandler,
		WebHandler: webHandler,
		Sessions:   store,
	})

	return app, nil
}
