package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func NewRouter(logger *slog.Logger, optionRepo optionRepo) http.Handler {
	options := &optionsHandler{
		logger:     logger.With("component", "rest"),
		optionRepo: optionRepo,
	}

	router := chi.NewRouter()
	router.Get("/ping", pingHandler)

	router.Get("/options/{key}", options.get)
	router.Put("/options/{key}", options.put)
	router.Delete("/options/{key}", options.delete)

	return router
}

// Start serves handler on port until ctx is done.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
