// Command recipeapi serves the recipes API backed by sqlite, for running
// the web front end locally with API_ENV=local.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodRecipesWebsite/internal/handlers"
	"foodRecipesWebsite/internal/logger"
	"foodRecipesWebsite/internal/services"
	"foodRecipesWebsite/internal/utils"

	"github.com/google/uuid"
)

func main() {
	config, err := LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load configuration")
	}
	logger.Initialize(config.LogLevel, config.Environment)

	store, err := services.OpenStore(config.DatabasePath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to open database")
	}
	defer store.Close()

	tokens := services.NewTokenIssuer(config.JWTSecret, config.TokenTTL)
	router := handlers.NewRouter(handlers.Services{
		Store:   store,
		Auth:    services.NewAuthService(store, tokens),
		Recipes: services.NewRecipeService(store),
	}, requestLogger)

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Log.WithField("port", config.Port).Info("Recipe API starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("Graceful shutdown failed")
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(utils.WithRequestID(r.Context(), requestID)))

		logger.Log.WithFields(map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  requestID,
		}).Debug("API request")
	})
}
