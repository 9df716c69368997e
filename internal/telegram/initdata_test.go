package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"
)

const testBotToken = "12345:test-token"

// signTestInitData builds a signed init-data payload the way Telegram does.
func signTestInitData(t *testing.T, fields map[string]string, botToken string) string {
	t.Helper()

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+fields[k])
	}
	checkString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))

	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func freshFields() map[string]string {
	return map[string]string{
		"auth_date": strconv.FormatInt(time.Now().Unix(), 10),
		"query_id":  "AAE1",
		"user":      `{"id":99,"first_name":"Ada","last_name":"L","username":"ada"}`,
	}
}

func TestValidateInitData_Valid(t *testing.T) {
	raw := signTestInitData(t, freshFields(), testBotToken)

	user, err := ValidateInitData(raw, testBotToken, time.Hour)
	if err != nil {
		t.Fatalf("expected valid init data, got error: %v", err)
	}
	if user.ID != 99 {
		t.Errorf("expected user id 99, got %d", user.ID)
	}
	if user.FirstName != "Ada" || user.Username != "ada" {
		t.Errorf("unexpected user fields: %+v", user)
	}
}

func TestValidateInitData_WrongToken(t *testing.T) {
	raw := signTestInitData(t, freshFields(), "other:token")

	if _, err := ValidateInitData(raw, testBotToken, time.Hour); !errors.Is(err, ErrInvalidInitData) {
		t.Fatalf("expected ErrInvalidInitData, got %v", err)
	}
}

func TestValidateInitData_Tampered(t *testing.T) {
	raw := signTestInitData(t, freshFields(), testBotToken)
	tampered := strings.Replace(raw, "Ada", "Eve", 1)

	if _, err := ValidateInitData(tampered, testBotToken, time.Hour); !errors.Is(err, ErrInvalidInitData) {
		t.Fatalf("expected ErrInvalidInitData, got %v", err)
	}
}

func TestValidateInitData_MissingHash(t *testing.T) {
	if _, err := ValidateInitData("user=%7B%22id%22%3A1%7D", testBotToken, time.Hour); !errors.Is(err, ErrInvalidInitData) {
		t.Fatalf("expected ErrInvalidInitData, got %v", err)
	}
}

func TestValidateInitData_Expired(t *testing.T) {
	fields := freshFields()
	fields["auth_date"] = strconv.FormatInt(time.Now().Add(-48*time.Hour).Unix(), 10)
	raw := signTestInitData(t, fields, testBotToken)

	if _, err := ValidateInitData(raw, testBotToken, time.Hour); !errors.Is(err, ErrExpiredInitData) {
		t.Fatalf("expected ErrExpiredInitData, got %v", err)
	}
}

func TestValidateInitData_MaxAgeDisabled(t *testing.T) {
	fields := freshFields()
	fields["auth_date"] = strconv.FormatInt(time.Now().Add(-48*time.Hour).Unix(), 10)
	raw := signTestInitData(t, fields, testBotToken)

	if _, err := ValidateInitData(raw, testBotToken, 0); err != nil {
		t.Fatalf("expected no error with max age disabled, got %v", err)
	}
}

func TestValidateInitData_NoUser(t *testing.T) {
	fields := freshFields()
	delete(fields, "user")
	raw := signTestInitData(t, fields, testBotToken)

	if _, err := ValidateInitData(raw, testBotToken, time.Hour); !errors.Is(err, ErrNoUser) {
		t.Fatalf("expected ErrNoUser, got %v", err)
	}
}
