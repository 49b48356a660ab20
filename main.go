package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"foodRecipesWebsite/internal/api"
	"foodRecipesWebsite/internal/cookies"
	"foodRecipesWebsite/internal/guard"
	"foodRecipesWebsite/internal/logger"
	"foodRecipesWebsite/internal/session"
	"foodRecipesWebsite/internal/utils"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

type App struct {
	Config       *Config
	API          *api.Factory
	Templates    *TemplateCache
	FlashStore   *sessions.CookieStore
	Countries    *CountryCache
	Metrics      *Metrics
	Guard        *guard.Guard
	LoginLimiter *RateLimiter
}

// NewApp wires the front end. cache backs the country list.
func NewApp(config *Config, cache utils.Cache) *App {
	app := &App{
		Config: config,
		API: api.NewFactory(api.Config{
			BaseURL:         config.APIBaseURL,
			Timeout:         config.APITimeout,
			WithCredentials: config.APIWithCredentials,
		}),
		Templates:    NewTemplateCache(templateFS),
		FlashStore:   NewFlashStore(config.SessionSecret, config.CookieSecure),
		Countries:    NewCountryCache(cache, config.CountriesCacheTTL),
		Metrics:      NewMetrics(),
		LoginLimiter: NewRateLimiter(config.LoginRatePerMinute, config.LoginRatePerMinute),
	}

	guardConfig := guard.DefaultConfig()
	guardConfig.Mode = config.GuardMatch
	guardConfig.OnRedirect = app.onGuardRedirect
	app.Guard = guard.New(guardConfig)

	return app
}

// Routes builds the router. The route guard runs before the session is
// hydrated and before any page handler.
func (app *App) Routes() http.Handler {
	r := mux.NewRouter()
	app.useMiddleware(r)

	r.HandleFunc("/healthz", app.handleHealth).Methods("GET")
	r.Handle("/metrics", app.Metrics.Handler()).Methods("GET")
	r.PathPrefix("/static/").Handler(http.FileServer(http.FS(staticFS)))

	pages := r.NewRoute().Subrouter()
	pages.Use(app.Guard.Middleware)
	pages.Use(session.Middleware(session.Options{
		TTL:     app.Config.SessionTTL,
		Cookies: cookies.Options{Secure: app.Config.CookieSecure},
	}))

	limited := app.RateLimitMiddleware(app.LoginLimiter)

	pages.HandleFunc("/", app.handleLoginPage).Methods("GET")
	pages.HandleFunc("/login", app.handleLoginPage).Methods("GET")
	pages.Handle("/login", limited(http.HandlerFunc(app.handleLogin))).Methods("POST")
	pages.HandleFunc("/register", app.handleRegisterPage).Methods("GET")
	pages.Handle("/register", limited(http.HandlerFunc(app.handleRegister))).Methods("POST")
	pages.HandleFunc("/logout", app.handleLogout).Methods("POST")

	pages.HandleFunc("/home", app.handleHome).Methods("GET")
	pages.HandleFunc("/home/recipes", app.handleCreateRecipe).Methods("POST")
	pages.HandleFunc("/home/recipes/{id:[0-9]+}/update", app.handleUpdateRecipe).Methods("POST")
	pages.HandleFunc("/home/recipes/{id:[0-9]+}/delete", app.handleDeleteRecipe).Methods("POST")

	pages.HandleFunc("/profile", app.handleProfilePage).Methods("GET")
	pages.HandleFunc("/profile", app.handleUpdateProfile).Methods("POST")

	return r
}

// useMiddleware installs the outer chain. Recovery runs inside logging so
// a recovered panic still carries its request ID and is counted.
func (app *App) useMiddleware(r *mux.Router) {
	r.Use(app.LoggingMiddleware)
	r.Use(app.RecoveryMiddleware)
	r.Use(SecurityHeadersMiddleware)
}

func (app *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// apiClient returns an API client authenticated by the request's session.
func (app *App) apiClient(r *http.Request) (*api.Client, error) {
	return app.API.For(session.FromContext(r.Context()))
}

// reportAPIError logs and counts a failed API call.
func (app *App) reportAPIError(r *http.Request, operation string, err error) {
	kind := "other"
	var apiErr *api.Error
	switch {
	case errors.Is(err, api.ErrTransport):
		kind = "transport"
	case errors.As(err, &apiErr):
		kind = "status_" + strconv.Itoa(apiErr.StatusCode)
	}
	app.Metrics.APIFailure(operation, kind)

	logger.Log.WithFields(map[string]interface{}{
		"operation":  operation,
		"kind":       kind,
		"request_id": utils.GetRequestID(r),
	}).WithError(err).Warn("API call failed")
}

func newCache(ctx context.Context, config *Config) utils.Cache {
	if config.RedisAddr == "" {
		return utils.NewMemoryCache(5 * time.Minute)
	}

	redisCache := utils.NewRedisCache(config.RedisAddr, "foodrecipes:")
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		logger.Log.WithField("addr", config.RedisAddr).WithError(err).Warn("Redis unavailable, using in-memory cache")
		redisCache.Close()
		return utils.NewMemoryCache(5 * time.Minute)
	}
	return redisCache
}

func main() {
	config, err := LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load configuration")
	}
	logger.Initialize(config.LogLevel, config.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := NewApp(config, newCache(ctx, config))
	app.LoginLimiter.StartCleanupRoutine(ctx.Done())

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           app.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"port":     config.Port,
			"api_base": config.APIBaseURL,
		}).Info("Server starting")
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
