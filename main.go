package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/csrf"

	"universal-shop/internal/config"
	"universal-shop/internal/handlers"
	"universal-shop/internal/logger"
	"universal-shop/internal/router"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger()
	log.Info().Msg("Universal Shop frontend starting")

	if cfg.BotToken == "" {
		log.Warn().Msg("TELEGRAM_BOT_TOKEN not set; init data validation and the bot proxy will reject requests")
	}

	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		log.Fatal().Err(err).Msg("Template loading failed")
	}

	r := router.SetupRouter(cfg, log, templates)

	csrfProtect := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.Path("/"),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port}),
	)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: csrfProtect(r),
	}

	go func() {
		log.Info().Msgf("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
