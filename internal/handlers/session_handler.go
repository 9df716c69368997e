package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"universal-shop/internal/auth"
	"universal-shop/internal/middleware"
	"universal-shop/internal/models"
	"universal-shop/internal/telegram"
)

// SessionHandler exchanges Telegram init data for a signed session cookie.
type SessionHandler struct {
	tokens          *auth.TokenManager
	botToken        string
	adminTelegramID int64
	initDataMaxAge  time.Duration
	sessionTTL      time.Duration
	cookieSecure    bool
	logger          zerolog.Logger
}

func NewSessionHandler(tokens *auth.TokenManager, botToken string, adminTelegramID int64, initDataMaxAge, sessionTTL time.Duration, cookieSecure bool, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		tokens:          tokens,
		botToken:        botToken,
		adminTelegramID: adminTelegramID,
		initDataMaxAge:  initDataMaxAge,
		sessionTTL:      sessionTTL,
		cookieSecure:    cookieSecure,
		logger:          logger,
	}
}

type createSessionRequest struct {
	InitData string `json:"init_data"`
}

// Create validates init data and sets the session cookie. The admin flag is
// resolved here once; it only gates what the UI shows.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.InitData == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "init_data is required")
		return
	}

	tgUser, err := telegram.ValidateInitData(req.InitData, h.botToken, h.initDataMaxAge)
	if err != nil {
		if errors.Is(err, telegram.ErrExpiredInitData) {
			respondWithError(w, http.StatusUnauthorized, "expired_init_data", "Init data is too old, reopen the app")
			return
		}
		h.logger.Warn().Err(err).Msg("Init data validation failed")
		respondWithError(w, http.StatusUnauthorized, "invalid_init_data", "Init data could not be verified")
		return
	}

	user := models.User{
		TelegramID: tgUser.ID,
		FirstName:  tgUser.FirstName,
		LastName:   tgUser.LastName,
		Username:   tgUser.Username,
		IsAdmin:    h.adminTelegramID != 0 && tgUser.ID == h.adminTelegramID,
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		h.logger.Error().Err(err).Msg("Session token generation failed")
		respondWithError(w, http.StatusInternalServerError, "internal_error", "Could not create session")
		return
	}

	// SameSite=None is required inside Telegram's WebView, but browsers only
	// accept it on secure cookies.
	sameSite := http.SameSiteLaxMode
	if h.cookieSecure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: sameSite,
	})

	respondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "user": user})
}
