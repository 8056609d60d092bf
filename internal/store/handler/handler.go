package storehandler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/sippsearcher/sippsearcher-backend/internal/apperror"
	"github.com/sippsearcher/sippsearcher-backend/internal/handlers"
	"github.com/sippsearcher/sippsearcher-backend/internal/store"
	"go.uber.org/zap"
)

var validate = validator.New()

type Service interface {
	GetAll(ctx context.Context) ([]store.Store, error)
	GetNear(ctx context.Context, lat, lng, radiusKm float64) ([]store.StoreWithDistance, error)
	Create(ctx context.Context, data store.Store) (int, error)
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
	router.Route("/stores", func(storeRouter chi.Router) {
		storeRouter.Get("/", apperror.Middleware(h.getAllStoresHandler))
		storeRouter.Get("/near/{lat}/{lng}/{radius}", apperror.Middleware(h.getStoresNearHandler))
		storeRouter.Post("/", apperror.Middleware(h.createStoreHandler))
	})
}

func (h *handler) getAllStoresHandler(w http.ResponseWriter, r *http.Request) error {
	stores, err := h.service.GetAll(r.Context())
	if err != nil {
		return err
	}

	render.JSON(w, r, stores)

	return nil
}

func (h *handler) getStoresNearHandler(w http.ResponseWriter, r *http.Request) error {
	lat, err := parseCoordinate(r, "lat")
	if err != nil {
		return err
	}

	lng, err := parseCoordinate(r, "lng")
	if err != nil {
		return err
	}

	radius, err := parseCoordinate(r, "radius")
	if err != nil {
		return err
	}

	stores, err := h.service.GetNear(r.Context(), lat, lng, radius)
	if err != nil {
		return err
	}

	render.JSON(w, r, stores)

	return nil
}

func (h *handler) createStoreHandler(w http.ResponseWriter, r *http.Request) error {
	var dto StoreRequest
	if err := render.DecodeJSON(r.Body, &dto); err != nil {
		h.logger.Error(apperror.ErrDecodeBody.Error(), zap.Error(err))
		return apperror.ErrDecodeBody
	}

	if err := validate.Struct(dto); err != nil {
		return apperror.NewValidationErr(err.(validator.ValidationErrors))
	}

	id, err := h.service.Create(r.Context(), dto.ToDomain())
	if err != nil {
		return err
	}

	render.JSON(w, r, IDResponse{ID: id})

	return nil
}

func parseCoordinate(r *http.Request, name string) (float64, error) {
	value, err := strconv.ParseFloat(chi.URLParam(r, name), 64)
	if err != nil {
		return 0, apperror.NewAppError("path parameter " + name + " is not a valid number")
	}

	return value, nil
}
