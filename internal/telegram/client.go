package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client is a thin Bot API caller backing the proxy endpoint. It forwards a
// method name and JSON payload and hands the Bot API response back verbatim.
type Client struct {
	token   string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

func NewClient(token, baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Call invokes a Bot API method. The response body is returned for any HTTP
// status the Bot API produced; an error means the call itself did not
// complete.
func (c *Client) Call(ctx context.Context, method string, payload json.RawMessage) (json.RawMessage, error) {
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}

	endpoint := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("telegram: build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telegram: call %s: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("telegram: read %s response: %w", method, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().
			Str("method", method).
			Int("status", resp.StatusCode).
			Msg("Bot API returned non-OK status")
	}
	return body, nil
}
