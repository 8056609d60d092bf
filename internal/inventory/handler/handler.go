package inventoryhandler

import (
	"context"
	"errors"
	"mime/multipart"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/sippsearcher/sippsearcher-backend/internal/apperror"
	"github.com/sippsearcher/sippsearcher-backend/internal/handlers"
	"github.com/sippsearcher/sippsearcher-backend/internal/inventory"
	"go.uber.org/zap"
)

var validate = validator.New()

type Service interface {
	GetStoreInventory(ctx context.Context, storeID int) ([]inventory.Item, error)
	Report(ctx context.Context, item inventory.Item) (int, error)
	Verify(ctx context.Context, inventoryID int, userIP string) error
}

type Uploader interface {
	SavePhoto(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
}

type handler struct {
	service  Service
	uploader Uploader
	logger   *zap.Logger
}

func New(service Service, uploader Uploader, logger *zap.Logger) handlers.Handler {
	return &handler{
		service:  service,
		uploader: uploader,
		logger:   logger,
	}
}

func (h *handler) Register(router chi.Router) {
	router.Get("/stores/{id}/inventory", apperror.Middleware(h.getStoreInventoryHandler))

	router.Route("/inventory", func(inventoryRouter chi.Router) {
		inventoryRouter.Post("/", apperror.Middleware(h.reportInventoryHandler))
		inventoryRouter.Post("/{id}/verify", apperror.Middleware(h.verifyInventoryHandler))
	})
}

func (h *handler) getStoreInventoryHandler(w http.ResponseWriter, r *http.Request) error {
	storeID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return apperror.NewAppError("path parameter id is not a valid number")
	}

	items, err := h.service.GetStoreInventory(r.Context(), storeID)
	if err != nil {
		return err
	}

	render.JSON(w, r, items)

	return nil
}

// reportInventoryHandler accepts form submissions with an optional photo
// attachment. The fields mirror the HTML form: store_id, drink_id, size,
// price, in_stock, updated_by.
func (h *handler) reportInventoryHandler(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			h.logger.Error(apperror.ErrDecodeBody.Error(), zap.Error(err))
			return apperror.ErrDecodeBody
		}

		if err := r.ParseForm(); err != nil {
			h.logger.Error(apperror.ErrDecodeBody.Error(), zap.Error(err))
			return apperror.ErrDecodeBody
		}
	}

	dto, err := decodeReportForm(r)
	if err != nil {
		return err
	}

	if err := validate.Struct(dto); err != nil {
		return apperror.NewValidationErr(err.(validator.ValidationErrors))
	}

	file, header, err := r.FormFile("photo")
	switch {
	case err == nil:
		defer file.Close()

		photoPath, err := h.uploader.SavePhoto(r.Context(), file, header)
		if err != nil {
			return err
		}
		dto.PhotoPath = &photoPath
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// No attachment, photo path stays absent.
	default:
		return apperror.NewAppError("failed to read photo attachment")
	}

	id, err := h.service.Report(r.Context(), dto.ToDomain())
	if err != nil {
		return err
	}

	render.JSON(w, r, IDResponse{ID: id})

	return nil
}

func (h *handler) verifyInventoryHandler(w http.ResponseWriter, r *http.Request) error {
	inventoryID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return apperror.NewAppError("path parameter id is not a valid number")
	}

	if err := h.service.Verify(r.Context(), inventoryID, clientIP(r)); err != nil {
		return err
	}

	render.JSON(w, r, SuccessResponse{Success: true})

	return nil
}

const uploadMemoryLimit = 32 << 20

func decodeReportForm(r *http.Request) (ReportRequest, error) {
	var dto ReportRequest

	if v := r.FormValue("store_id"); v != "" {
		storeID, err := strconv.Atoi(v)
		if err != nil {
			return dto, apperror.NewAppError("field store_id is not a valid number")
		}
		dto.StoreID = storeID
	}

	dto.DrinkID = r.FormValue("drink_id")
	dto.Size = r.FormValue("size")

	if v := r.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return dto, apperror.NewAppError("field price is not a valid number")
		}
		dto.Price = &price
	}

	inStock, err := parseInStock(r.FormValue("in_stock"))
	if err != nil {
		return dto, err
	}
	dto.InStock = inStock

	if v := r.FormValue("updated_by"); v != "" {
		dto.UpdatedBy = &v
	}

	return dto, nil
}

// parseInStock accepts the HTML form conventions for the in_stock
// checkbox. An absent value means in stock, matching the schema default.
func parseInStock(value string) (bool, error) {
	switch value {
	case "", "on":
		return true, nil
	default:
		inStock, err := strconv.ParseBool(value)
		if err != nil {
			return false, apperror.NewAppError("field in_stock is not a valid boolean")
		}
		return inStock, nil
	}
}

// clientIP extracts the submitter address, preferring proxy headers so
// deployments behind a load balancer record the real caller.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
