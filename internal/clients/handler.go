package clients

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orderdesk/orderdesk/internal/platform/httpx"
)

// Handler exposes client reference data over HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a client handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers client routes on the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
}

// List responds with every client. `?refresh=1` bypasses and repopulates the
// cache; the edit view uses it to pick up address changes.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var (
		result []Client
		err    error
	)
	if r.URL.Query().Get("refresh") != "" {
		result, err = h.service.Refresh(r.Context())
	} else {
		result, err = h.service.List(r.Context())
	}
	if err != nil {
		h.logger.Error("list clients failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if result == nil {
		result = []Client{}
	}
	httpx.JSON(w, http.StatusOK, result)
}
