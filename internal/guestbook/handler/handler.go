package guestbookhandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/sippsearcher/sippsearcher-backend/internal/apperror"
	"github.com/sippsearcher/sippsearcher-backend/internal/guestbook"
	"github.com/sippsearcher/sippsearcher-backend/internal/handlers"
	"go.uber.org/zap"
)

var validate = validator.New()

type Service interface {
	GetEntries(ctx context.Context) ([]guestbook.Entry, error)
	Sign(ctx context.Context, name, message string) (int, error)
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
	router.Route("/guestbook", func(guestbookRouter chi.Router) {
		guestbookRouter.Get("/", apperror.Middleware(h.getEntriesHandler))
		guestbookRouter.Post("/", apperror.Middleware(h.signHandler))
	})
}

func (h *handler) getEntriesHandler(w http.ResponseWriter, r *http.Request) error {
	entries, err := h.service.GetEntries(r.Context())
	if err != nil {
		return err
	}

	render.JSON(w, r, entries)

	return nil
}

func (h *handler) signHandler(w http.ResponseWriter, r *http.Request) error {
	var dto EntryRequest
	if err := render.DecodeJSON(r.Body, &dto); err != nil {
		h.logger.Error(apperror.ErrDecodeBody.Error(), zap.Error(err))
		return apperror.ErrDecodeBody
	}

	if err := validate.Struct(dto); err != nil {
		return apperror.NewValidationErr(err.(validator.ValidationErrors))
	}

	id, err := h.service.Sign(r.Context(), dto.Name, dto.Message)
	if err != nil {
		return err
	}

	render.JSON(w, r, IDResponse{ID: id})

	return nil
}
