package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Secret-key namespace defined by the Bot API for WebApp init data.
const webAppSecretKey = "WebAppData"

var (
	ErrInvalidInitData = errors.New("telegram: init data signature mismatch")
	ErrExpiredInitData = errors.New("telegram: init data is too old")
	ErrNoUser          = errors.New("telegram: init data has no user")
)

// WebAppUser mirrors the user object embedded in WebApp init data.
type WebAppUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
}

// ValidateInitData verifies a signed init-data payload against the bot token
// and returns the embedded user. maxAge bounds how old the payload's
// auth_date may be; zero disables the check.
func ValidateInitData(raw, botToken string, maxAge time.Duration) (*WebAppUser, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("telegram: parse init data: %w", err)
	}

	gotHash := values.Get("hash")
	if gotHash == "" {
		return nil, ErrInvalidInitData
	}
	values.Del("hash")

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}
	checkString := strings.Join(pairs, "\n")

	if !hmac.Equal([]byte(signInitData(checkString, botToken)), []byte(gotHash)) {
		return nil, ErrInvalidInitData
	}

	if maxAge > 0 {
		authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
		if err != nil {
			return nil, ErrExpiredInitData
		}
		if time.Since(time.Unix(authDate, 0)) > maxAge {
			return nil, ErrExpiredInitData
		}
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return nil, ErrNoUser
	}
	var user WebAppUser
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return nil, fmt.Errorf("telegram: decode init data user: %w", err)
	}
	if user.ID == 0 {
		return nil, ErrNoUser
	}
	return &user, nil
}

func signInitData(checkString, botToken string) string {
	secret := hmac.New(sha256.New, []byte(webAppSecretKey))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))
	return hex.EncodeToString(mac.Sum(nil))
}
