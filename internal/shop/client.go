package shop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"universal-shop/internal/models"
)

// Client talks to the shop backend over its fixed REST contract. Every call
// carries the caller's bearer credential and shares one conservative
// timeout; the backend owns all durable state and status transitions.
type Client struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Dashboard fetches the aggregate listing. Absent sub-fields are normalized
// to empty collections so a partial payload never blocks rendering.
func (c *Client) Dashboard(ctx context.Context, credential string) (*models.Dashboard, error) {
	var dash models.Dashboard
	if err := c.doJSON(ctx, credential, http.MethodGet, "/api/dashboard", nil, &dash); err != nil {
		return nil, err
	}
	if dash.Games == nil {
		dash.Games = []models.Game{}
	}
	if dash.Apps == nil {
		dash.Apps = []models.App{}
	}
	if dash.AllProducts == nil {
		dash.AllProducts = []models.Product{}
	}
	return &dash, nil
}

// TrackView records a product view. Callers treat failures as best-effort
// telemetry.
func (c *Client) TrackView(ctx context.Context, credential string, productID int) error {
	path := fmt.Sprintf("/api/products/%d/view", productID)
	return c.doJSON(ctx, credential, http.MethodPost, path, strings.NewReader("{}"), nil)
}

// DeleteViewHistory removes one view-history entry for the caller.
func (c *Client) DeleteViewHistory(ctx context.Context, credential string, productID int) error {
	path := fmt.Sprintf("/api/view-history/%d", productID)
	return c.doJSON(ctx, credential, http.MethodDelete, path, nil, nil)
}

type orderRequest struct {
	ProductID     int                  `json:"product_id"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

type orderResponse struct {
	OrderID               int                 `json:"order_id"`
	RequiresManualPayment bool                `json:"requires_manual_payment"`
	PaymentURL            string              `json:"payment_url"`
	BankDetails           *models.BankDetails `json:"bank_details"`
}

// CreateOrder submits an order and decodes the response into a concrete
// payment branch.
func (c *Client) CreateOrder(ctx context.Context, credential string, productID int, method models.PaymentMethod) (models.OrderResult, error) {
	body, err := json.Marshal(orderRequest{ProductID: productID, PaymentMethod: method})
	if err != nil {
		return nil, fmt.Errorf("shop: encode order request: %w", err)
	}

	var resp orderResponse
	if err := c.doJSON(ctx, credential, http.MethodPost, "/api/orders", bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}

	if resp.RequiresManualPayment {
		if resp.BankDetails == nil {
			return nil, fmt.Errorf("shop: order %d requires manual payment but has no bank details", resp.OrderID)
		}
		return models.ManualPayment{OrderID: resp.OrderID, Bank: *resp.BankDetails}, nil
	}
	if resp.PaymentURL == "" {
		return nil, fmt.Errorf("shop: order %d has no payment url", resp.OrderID)
	}
	return models.AutomatedPayment{OrderID: resp.OrderID, PaymentURL: resp.PaymentURL}, nil
}

// CreateProduct submits the admin product-creation form as multipart. The
// image part is optional.
func (c *Client) CreateProduct(ctx context.Context, credential string, draft models.ProductDraft, image []byte, imageName string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":          draft.Name,
		"description":   draft.Description,
		"price":         strconv.FormatFloat(draft.Price, 'f', 2, 64),
		"delivery_data": draft.DeliveryData,
	}
	if draft.GameID != nil {
		fields["game_id"] = strconv.Itoa(*draft.GameID)
	}
	if draft.AppID != nil {
		fields["app_id"] = strconv.Itoa(*draft.AppID)
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("shop: write product field %s: %w", name, err)
		}
	}

	if len(image) > 0 {
		part, err := w.CreateFormFile("image", imageName)
		if err != nil {
			return fmt.Errorf("shop: attach product image: %w", err)
		}
		if _, err := part.Write(image); err != nil {
			return fmt.Errorf("shop: write product image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("shop: finalize product form: %w", err)
	}

	return c.do(ctx, credential, http.MethodPost, "/api/admin/products", &buf, w.FormDataContentType(), nil)
}

// CreateGame creates a catalog game entry.
func (c *Client) CreateGame(ctx context.Context, credential string, draft models.GameDraft) error {
	body, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("shop: encode game request: %w", err)
	}
	return c.doJSON(ctx, credential, http.MethodPost, "/api/admin/games", bytes.NewReader(body), nil)
}

func (c *Client) doJSON(ctx context.Context, credential, method, path string, body io.Reader, out any) error {
	contentType := ""
	if body != nil {
		contentType = "application/json"
	}
	return c.do(ctx, credential, method, path, body, contentType, out)
}

func (c *Client) do(ctx context.Context, credential, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("shop: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("shop: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("shop: %s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("shop: decode %s %s response: %w", method, path, err)
	}
	return nil
}
