package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"universal-shop/internal/telegram"
)

// ProxyHandler forwards Bot API calls so the bot credential never reaches
// the page.
type ProxyHandler struct {
	telegram *telegram.Client
	logger   zerolog.Logger
}

func NewProxyHandler(client *telegram.Client, logger zerolog.Logger) *ProxyHandler {
	return &ProxyHandler{
		telegram: client,
		logger:   logger,
	}
}

type proxyRequest struct {
	Method string          `json:"method"`
	Data   json.RawMessage `json:"data"`
}

func (h *ProxyHandler) Forward(w http.ResponseWriter, r *http.Request) {
	var req proxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Method == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "method is required")
		return
	}

	result, err := h.telegram.Call(r.Context(), req.Method, req.Data)
	if err != nil {
		h.logger.Error().Err(err).Str("bot_method", req.Method).Msg("Bot API call failed")
		respondWithError(w, http.StatusBadGateway, "telegram_unavailable", "Bot API call failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(result)
}
