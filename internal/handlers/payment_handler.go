package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"universal-shop/internal/middleware"
	"universal-shop/internal/models"
	"universal-shop/internal/shop"
)

// PaymentHandler drives the order flow: method selection, submission, and
// the resolved checkout page. The flow holds no server-side state; leaving
// any page discards it.
type PaymentHandler struct {
	shop   *shop.Client
	tmpl   *TemplateCache
	logger zerolog.Logger
}

func NewPaymentHandler(shopClient *shop.Client, templates *TemplateCache, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		shop:   shopClient,
		tmpl:   templates,
		logger: logger,
	}
}

type methodOption struct {
	Value   models.PaymentMethod
	Label   string
	Checked bool
}

func methodOptions(selected models.PaymentMethod) []methodOption {
	methods := models.PaymentMethods()
	if !selected.IsValid() {
		selected = methods[0]
	}
	options := make([]methodOption, 0, len(methods))
	for _, m := range methods {
		options = append(options, methodOption{
			Value:   m,
			Label:   m.Label(),
			Checked: m == selected,
		})
	}
	return options
}

// BuyForm records a view and renders the payment-method selection for one
// product. The first enumerated method starts selected.
func (h *PaymentHandler) BuyForm(w http.ResponseWriter, r *http.Request) {
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

	dash, err := h.shop.Dashboard(r.Context(), user.Credential())
	if err != nil {
		h.logger.Error().Err(err).Msg("Dashboard fetch for buy form failed")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	product, found := dash.FindProduct(productID)
	if !found {
		http.NotFound(w, r)
		return
	}

	// Opening the payment flow counts as a view.
	if err := h.shop.TrackView(r.Context(), user.Credential(), productID); err != nil {
		h.logger.Warn().Err(err).Int("product_id", productID).Msg("View tracking failed")
	}

	renderTemplate(w, h.logger, h.tmpl, "buy.html", map[string]any{
		"User":      user,
		"Product":   product,
		"Methods":   methodOptions(models.PaymentMethodTON),
		"CsrfField": csrf.TemplateField(r),
	})
}

// CreateOrder submits the order. Failure re-renders the selection with a
// blocking error and no retry; success renders the branch the backend chose.
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_form", "Could not parse form data")
		return
	}

	productID, err := strconv.Atoi(r.FormValue("product_id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_product_id", "Product id must be numeric")
		return
	}
	method := models.PaymentMethod(r.FormValue("payment_method"))
	if !method.IsValid() {
		respondWithError(w, http.StatusBadRequest, "invalid_payment_method", "Unknown payment method")
		return
	}

	// Display-only echo fields so a failed submit can re-render the
	// selection without another fetch; the backend computes the real amount.
	product := models.Product{
		ID:   productID,
		Name: r.FormValue("product_name"),
	}
	product.Price, _ = strconv.ParseFloat(r.FormValue("product_price"), 64)

	result, err := h.shop.CreateOrder(r.Context(), user.Credential(), productID, method)
	if err != nil {
		h.logger.Error().Err(err).Int("product_id", productID).Str("payment_method", string(method)).Msg("Order creation failed")
		renderTemplate(w, h.logger, h.tmpl, "buy.html", map[string]any{
			"User":      user,
			"Product":   &product,
			"Methods":   methodOptions(method),
			"Error":     "Order could not be created. Please try again.",
			"CsrfField": csrf.TemplateField(r),
		})
		return
	}

	switch payment := result.(type) {
	case models.ManualPayment:
		renderTemplate(w, h.logger, h.tmpl, "order_manual.html", map[string]any{
			"User":    user,
			"Product": &product,
			"OrderID": payment.OrderID,
			"Bank":    payment.Bank,
		})
	case models.AutomatedPayment:
		renderTemplate(w, h.logger, h.tmpl, "order_redirect.html", map[string]any{
			"User":       user,
			"Product":    &product,
			"OrderID":    payment.OrderID,
			"PaymentURL": payment.PaymentURL,
		})
	default:
		h.logger.Error().Int("product_id", productID).Msg("Unknown order result type")
		respondWithError(w, http.StatusInternalServerError, "internal_error", "Unexpected order response")
	}
}
