package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"universal-shop/internal/models"
)

// SessionClaims is the payload of the session token issued after init-data
// validation.
type SessionClaims struct {
	TelegramID int64  `json:"telegram_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name,omitempty"`
	Username   string `json:"username,omitempty"`
	IsAdmin    bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenManager mints and verifies signed session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Generate issues a signed session token for the resolved user.
func (t *TokenManager) Generate(user models.User) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		TelegramID: user.TelegramID,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Username:   user.Username,
		IsAdmin:    user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.TelegramID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses a session token and reconstructs the session user.
func (t *TokenManager) Verify(tokenString string) (*models.User, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("auth: invalid session token")
	}

	return &models.User{
		TelegramID: claims.TelegramID,
		FirstName:  claims.FirstName,
		LastName:   claims.LastName,
		Username:   claims.Username,
		IsAdmin:    claims.IsAdmin,
	}, nil
}
