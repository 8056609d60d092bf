package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sippsearcher/sippsearcher-backend/internal/apperror"
	"github.com/sippsearcher/sippsearcher-backend/internal/handlers"
	"github.com/sippsearcher/sippsearcher-backend/internal/storage"
	"go.uber.org/zap"
)

type StoreCounter interface {
	Kind() storage.Kind
	CountStores(ctx context.Context) (int, error)
}

type handler struct {
	storage StoreCounter
	logger  *zap.Logger
}

func New(st StoreCounter, logger *zap.Logger) handlers.Handler {
	return &handler{
		storage: st,
		logger:  logger,
	}
}

func (h *handler) Register(router chi.Router) {
	router.Get("/health", apperror.Middleware(h.healthHandler))
}

type Response struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	// StoreCount is reported for the in-memory backend only, as a hint
	// that the data set is ephemeral.
	StoreCount *int `json:"store_count,omitempty"`
}

func (h *handler) healthHandler(w http.ResponseWriter, r *http.Request) error {
	resp := Response{
		Status:    "ok",
		Timestamp: time.Now(),
		Database:  string(h.storage.Kind()),
	}

	if h.storage.Kind() == storage.KindMemory {
		count, err := h.storage.CountStores(r.Context())
		if err != nil {
			h.logger.Error("unexpected error when counting stores", zap.Error(err))
			return err
		}
		resp.StoreCount = &count
	}

	render.JSON(w, r, resp)

	return nil
}
