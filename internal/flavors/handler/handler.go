package flavorshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sippsearcher/sippsearcher-backend/internal/apperror"
	"github.com/sippsearcher/sippsearcher-backend/internal/flavors"
	"github.com/sippsearcher/sippsearcher-backend/internal/handlers"
)

type handler struct {
	catalog flavors.Catalog
}

func New(catalog flavors.Catalog) handlers.Handler {
	return &handler{
		catalog: catalog,
	}
}

func (h *handler) Register(router chi.Router) {
	router.Get("/flavors", apperror.Middleware(h.getFlavorsHandler))
}

func (h *handler) getFlavorsHandler(w http.ResponseWriter, r *http.Request) error {
	render.JSON(w, r, h.catalog)

	return nil
}
