package catalog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orderdesk/orderdesk/internal/platform/httpx"
)

// Handler exposes the item catalog over HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a catalog handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers catalog routes on the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
}

// List responds with the full catalog. `?refresh=1` repopulates the cache;
// the order-edit view uses it so displayed prices are current.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		result []Item
		err    error
	)
	if r.URL.Query().Get("refresh") != "" {
		result, err = h.service.Refresh(r.Context())
	} else {
		result, err = h.service.List(r.Context())
	}
	if err != nil {
		h.logger.Error("list items failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if result == nil {
		result = []Item{}
	}
	httpx.JSON(w, http.StatusOK, result)
}
