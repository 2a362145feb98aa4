package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	chatapi "finanalyst/pkg/api/chat"
	uploadapi "finanalyst/pkg/api/upload"
	"finanalyst/pkg/core/metrics"
	"finanalyst/pkg/core/responder"
	"finanalyst/pkg/core/session"
	"finanalyst/pkg/server/middleware"
)

// WebAPI is the HTTP surface of the analyzer.
type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Sessions  *session.Manager
	Engine    *metrics.Engine
	Responder *responder.Responder
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	uploadHandler := uploadapi.NewHandler(config.Dependencies.Sessions, config.Dependencies.Engine, logger)
	chatHandler := chatapi.NewHandler(config.Dependencies.Sessions, config.Dependencies.Responder, logger)

	router := chi.NewRouter()
	router.Use(middleware.Logger(&logger))
	router.Use(chimiddleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", uploadHandler.HandleCreateSession)
		r.Post("/sessions/{sessionID}/statement", uploadHandler.HandleUpload)
		r.Post("/sessions/{sessionID}/chat", chatHandler.HandleAsk)
		r.Get("/sessions/{sessionID}/messages", chatHandler.HandleHistory)
	})

	timeout := config.ShutdownTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: timeout,
	}
}

// Start runs the server until it fails or a shutdown signal arrives.
func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}
		if err != nil {
			return err
		}
	}

	return nil
}
