package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/sippsearcher/sippsearcher-backend/internal/apperror"
	"github.com/sippsearcher/sippsearcher-backend/internal/config"
	"github.com/sippsearcher/sippsearcher-backend/internal/flavors"
	flavorshandler "github.com/sippsearcher/sippsearcher-backend/internal/flavors/handler"
	guestbookhandler "github.com/sippsearcher/sippsearcher-backend/internal/guestbook/handler"
	guestbookservice "github.com/sippsearcher/sippsearcher-backend/internal/guestbook/service"
	"github.com/sippsearcher/sippsearcher-backend/internal/health"
	inventoryhandler "github.com/sippsearcher/sippsearcher-backend/internal/inventory/handler"
	inventoryservice "github.com/sippsearcher/sippsearcher-backend/internal/inventory/service"
	"github.com/sippsearcher/sippsearcher-backend/internal/metrics"
	storehandler "github.com/sippsearcher/sippsearcher-backend/internal/store/handler"
	storeservice "github.com/sippsearcher/sippsearcher-backend/internal/store/service"
	uploadservice "github.com/sippsearcher/sippsearcher-backend/internal/upload/service"
	visitorshandler "github.com/sippsearcher/sippsearcher-backend/internal/visitors/handler"
	visitorsservice "github.com/sippsearcher/sippsearcher-backend/internal/visitors/service"
	"go.uber.org/zap"
)

type App struct {
	HTTPServer *http.Server
}

func NewApp(log *zap.Logger, cfg config.Config) *App {
	st, err := newStorage(context.TODO(), cfg, log)
	if err != nil {
		log.Fatal(err.Error())
	}

	log.Info("storage selected", zap.String("kind", string(st.Kind())))

	catalog, err := flavors.Load()
	if err != nil {
		log.Fatal(err.Error())
	}

	router := chi.NewRouter()

	router.Use(
		LoggingMiddleware(log),
		metrics.Middleware,
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.HTTPServer.AllowedOrigins,
			AllowCredentials: true,
		}),
		middleware.Recoverer,
	)

	router.Handle("/metrics", metrics.Handler())

	healthHandler := health.New(st, log)
	healthHandler.Register(router)

	// Photo attachments are served straight from the upload directory.
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.Dir))))

	router.Route("/api", func(r chi.Router) {
		r.Get("/config", apperror.Middleware(ConfigHandler(cfg.GoogleMapsAPIKey)))

		storeService := storeservice.New(st, log)
		storeHandler := storehandler.New(storeService, log)

		log.Info("register store handlers")

		storeHandler.Register(r)

		uploadService := uploadservice.New(cfg.Uploads.Dir, log)

		inventoryService := inventoryservice.New(st, log)
		inventoryHandler := inventoryhandler.New(inventoryService, uploadService, log)

		log.Info("register inventory handlers")

		inventoryHandler.Register(r)

		guestbookService := guestbookservice.New(st, log)
		guestbookHandler := guestbookhandler.New(guestbookService, log)

		log.Info("register guestbook handlers")

		guestbookHandler.Register(r)

		visitorsService := visitorsservice.New(st, log)
		visitorsHandler := visitorshandler.New(visitorsService, log)

		log.Info("register visitors handlers")

		visitorsHandler.Register(r)

		flavorsHandler := flavorshandler.New(catalog)

		log.Info("register flavors handlers")

		flavorsHandler.Register(r)
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		HTTPServer: srv,
	}
}

func (a *App) MustRun() {
	if err := a.HTTPServer.ListenAndServe(); err != nil {
		panic("failed to start server")
	}
}

func LoggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote", r.RemoteAddr),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

type ConfigResponse struct {
	GoogleMapsAPIKey string `json:"googleMapsApiKey"`
}

// ConfigHandler exposes the map widget key to the frontend.
func ConfigHandler(googleMapsAPIKey string) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		render.JSON(w, r, ConfigResponse{GoogleMapsAPIKey: googleMapsAPIKey})

		return nil
	}
}
