package orders

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/orderdesk/orderdesk/internal/clients"
	"github.com/orderdesk/orderdesk/internal/platform/httpx"
	"github.com/orderdesk/orderdesk/internal/view"
)

// Handler exposes the sales-order API and the printable order view.
type Handler struct {
	logger        *slog.Logger
	service       *Service
	clientService *clients.Service
	templates     *view.Engine
}

// NewHandler constructs an order handler.
func NewHandler(logger *slog.Logger, service *Service, clientService *clients.Service, templates *view.Engine) *Handler {
	return &Handler{
		logger:        logger,
		service:       service,
		clientService: clientService,
		templates:     templates,
	}
}

// MountRoutes registers the JSON API routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Show)
	r.Put("/{id}", h.Update)
}

// List responds with one summary row per order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list orders failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	resp := make([]SummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		resp = append(resp, toSummaryResponse(s))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Show responds with the full order detail.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get order failed", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toDetailResponse(detail))
}

// Create persists a new order and responds 201 with the generated id, which
// the UI needs immediately to offer printing.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req SaveOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create order failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, CreatedResponse{ID: id})
}

// Update replaces an existing order wholesale and responds 204.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	var req SaveOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	if err := h.service.Update(r.Context(), id, req); err != nil {
		h.logger.Error("update order failed", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Print renders the order as a printable HTML document.
func (h *Handler) Print(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("get order for print failed", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	client, err := h.clientService.Get(r.Context(), detail.Order.ClientID)
	if err != nil {
		h.logger.Error("get client for print failed", slog.Int64("id", detail.Order.ClientID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	data := view.TemplateData{
		Title: "Sales Order " + strconv.FormatInt(detail.Order.ID, 10),
		Data: map[string]any{
			"Order":  toDetailResponse(detail),
			"Client": client,
		},
	}
	if err := h.templates.Render(w, "print_order.html", data); err != nil {
		h.logger.Error("render print view failed", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid order id", httpx.ErrValidation)
	}
	return id, nil
}
