package visitorshandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sippsearcher/sippsearcher-backend/internal/apperror"
	"github.com/sippsearcher/sippsearcher-backend/internal/handlers"
	"go.uber.org/zap"
)

type Service interface {
	Visit(ctx context.Context) (int, error)
}

type handler struct {
	service Service
	logger  *zap.Logger
}

func New(service Service, logger *zap.Logger) handlers.Handler {
	return &handler{
		service: service,
		logger:  logger,
	}
}

func (h *handler) Register(router chi.Router) {
	// The frontend fetches this once per page load, so the read is
	// also the increment.
	router.Get("/visitors", apperror.Middleware(h.visitHandler))
}

type CountResponse struct {
	Count int `json:"count"`
}

func (h *handler) visitHandler(w http.ResponseWriter, r *http.Request) error {
	count, err := h.service.Visit(r.Context())
	if err != nil {
		return err
	}

	render.JSON(w, r, CountResponse{Count: count})

	return nil
}
