package handlers

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/nfnt/resize"
	"github.com/rs/zerolog"

	"universal-shop/internal/middleware"
	"universal-shop/internal/models"
	"universal-shop/internal/shop"
)

const maxUploadBytes = 10 << 20

var adminTabs = []string{"products", "games", "apps", "orders"}

// AdminHandler serves the tabbed catalog-management panel. Products and
// games have working creation forms; apps and orders follow the same CRUD
// pattern and are placeholders for now.
type AdminHandler struct {
	shop   *shop.Client
	tmpl   *TemplateCache
	logger zerolog.Logger
}

func NewAdminHandler(shopClient *shop.Client, templates *TemplateCache, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		shop:   shopClient,
		tmpl:   templates,
		logger: logger,
	}
}

func (h *AdminHandler) Panel(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r)

	tab := r.URL.Query().Get("tab")
	valid := false
	for _, t := range adminTabs {
		if tab == t {
			valid = true
			break
		}
	}
	if !valid {
		tab = adminTabs[0]
	}

	renderTemplate(w, h.logger, h.tmpl, "admin.html", map[string]any{
		"User":      user,
		"Tabs":      adminTabs,
		"Tab":       tab,
		"Created":   r.URL.Query().Get("created"),
		"Failed":    r.URL.Query().Get("failed"),
		"CsrfField": csrf.TemplateField(r),
	})
}

// CreateProduct accepts the multipart product form, downscales the optional
// image, and forwards everything to the backend.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.logger.Warn().Err(err).Msg("Product form too large or malformed")
		http.Redirect(w, r, "/admin?tab=products&failed=product", http.StatusSeeOther)
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price < 0 {
		http.Redirect(w, r, "/admin?tab=products&failed=product", http.StatusSeeOther)
		return
	}

	draft := models.ProductDraft{
		Name:         strings.TrimSpace(r.FormValue("name")),
		Description:  strings.TrimSpace(r.FormValue("description")),
		Price:        price,
		DeliveryData: r.FormValue("delivery_data"),
		GameID:       optionalID(r.FormValue("game_id")),
		AppID:        optionalID(r.FormValue("app_id")),
	}
	if draft.Name == "" || draft.DeliveryData == "" {
		http.Redirect(w, r, "/admin?tab=products&failed=product", http.StatusSeeOther)
		return
	}

	var imageData []byte
	imageName := ""
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imageData, err = normalizeImage(file, header.Filename)
		if err != nil {
			h.logger.Warn().Err(err).Str("filename", header.Filename).Msg("Product image rejected")
			http.Redirect(w, r, "/admin?tab=products&failed=image", http.StatusSeeOther)
			return
		}
		imageName = "product.jpg"
	}

	if err := h.shop.CreateProduct(r.Context(), user.Credential(), draft, imageData, imageName); err != nil {
		h.logger.Error().Err(err).Str("name", draft.Name).Msg("Product creation failed")
		http.Redirect(w, r, "/admin?tab=products&failed=product", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin?tab=products&created=product", http.StatusSeeOther)
}

// CreateGame forwards the game form to the backend.
func (h *AdminHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.CurrentUser(r)

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/admin?tab=games&failed=game", http.StatusSeeOther)
		return
	}

	draft := models.GameDraft{
		Name:     strings.TrimSpace(r.FormValue("name")),
		ImageURL: strings.TrimSpace(r.FormValue("image_url")),
	}
	if draft.Name == "" {
		http.Redirect(w, r, "/admin?tab=games&failed=game", http.StatusSeeOther)
		return
	}

	if err := h.shop.CreateGame(r.Context(), user.Credential(), draft); err != nil {
		h.logger.Error().Err(err).Str("name", draft.Name).Msg("Game creation failed")
		http.Redirect(w, r, "/admin?tab=games&failed=game", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin?tab=games&created=game", http.StatusSeeOther)
}

func optionalID(raw string) *int {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// normalizeImage decodes an uploaded PNG or JPEG, caps its width at 800px,
// and re-encodes it as JPEG before it leaves the service.
func normalizeImage(file multipart.File, filename string) ([]byte, error) {
	var img image.Image
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return nil, errors.New("unsupported image format")
	}
	if err != nil {
		return nil, err
	}

	if img.Bounds().Dx() > 800 {
		img = resize.Resize(800, 0, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
