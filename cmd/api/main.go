package main

import (
	"log"

	"healthart-backend/internal/bootstrap"
	"healthart-backend/internal/shared/config"
	"healthart-backend/internal/shared/server"
	"healthart-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer telemetry.Sync()

	addr := server.Addr(cfg.Port)
	log.Printf("Starting HealthArt server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
