package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"creatorstudio/internal/app"
	"creatorstudio/internal/http/handlers"
	httpapi "creatorstudio/internal/http/httpapi"
	"creatorstudio/internal/infra"
	"creatorstudio/internal/mcptools"
	"creatorstudio/internal/shell"
)

const version = "0.1.0"

func main() {
	_ = godotenv.Load()

	cfg, presets, err := app.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	components, err := app.Build(cfg, presets, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build studio")
	}
	defer func() {
		if err := components.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to release media")
		}
	}()

	// Generation requests run on base so they outlive the HTTP request that
	// started them.
	base, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	registry := shell.NewRegistry(base, shell.RegistryOptions{
		Bridge: components.Credentials,
		Views:  components.ViewOptions(),
		Idle:   cfg.SessionIdleTimeout,
		Logger: &logger,
	})
	go registry.Run(base, time.Minute)

	handlerApp := handlers.NewApp(cfg, logger, registry, components.Media, presets.Tones)
	mcpServer := mcptools.NewServer(version, components.Service, &logger)
	router := httpapi.NewRouter(handlerApp, httpapi.Options{MCP: mcptools.Handler(mcpServer)})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("script_provider", cfg.ScriptProvider).
			Bool("has_key", cfg.GeminiAPIKey != "").
			Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	cancelBase()
	logger.Info().Msg("server stopped")
}
