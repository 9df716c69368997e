package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"universal-shop/internal/middleware"
	"universal-shop/internal/shop"
)

// DashboardHandler renders the storefront page and proxies the view-history
// side effects.
type DashboardHandler struct {
	shop   *shop.Client
	tmpl   *TemplateCache
	logger zerolog.Logger
}

func NewDashboardHandler(shopClient *shop.Client, templates *TemplateCache, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		shop:   shopClient,
		tmpl:   templates,
		logger: logger,
	}
}

// Index renders the page shell. Without a session no backend call is made
// and the page renders its empty state with the bootstrap script; a failed
// fetch is logged and degrades the same way.
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"CsrfToken": csrf.Token(r),
		"CsrfField": csrf.TemplateField(r),
	}

	user, ok := middleware.CurrentUser(r)
	if ok {
		data["User"] = user
		dash, err := h.shop.Dashboard(r.Context(), user.Credential())
		if err != nil {
			h.logger.Error().Err(err).Int64("telegram_id", user.TelegramID).Msg("Dashboard fetch failed")
		} else {
			data["Dashboard"] = dash
		}
	}

	renderTemplate(w, h.logger, h.tmpl, "home.html", data)
}

// TrackView records a product view. Best-effort telemetry: failures are
// logged, never surfaced, never retried.
func (h *DashboardHandler) TrackView(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	productID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_product_id", "Product id must be numeric")
		return
	}

	if err := h.shop.TrackView(r.Context(), user.Credential(), productID); err != nil {
		h.logger.Warn().Err(err).Int("product_id", productID).Msg("View tracking failed")
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteViewHistory removes one entry and redirects to the dashboard, which
// re-fetches the aggregate. No state is mutated locally.
func (h *DashboardHandler) DeleteViewHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	productID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_product_id", "Product id must be numeric")
		return
	}

	if err := h.shop.DeleteViewHistory(r.Context(), user.Credential(), productID); err != nil {
		h.logger.Warn().Err(err).Int("product_id", productID).Msg("View history deletion failed")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
