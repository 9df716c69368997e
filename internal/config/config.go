package config

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	BackendURL      string
	TelegramAPIURL  string
	BotToken        string
	AdminTelegramID int64
	SessionSecret   string
	SessionTTL      time.Duration
	InitDataMaxAge  time.Duration
	RequestTimeout  time.Duration
	CSRFKey         []byte
	CookieSecure    bool
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:8000"),
		TelegramAPIURL: getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),
		BotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		SessionTTL:     minutesEnv("SESSION_TTL_MINUTES", 12*time.Hour),
		InitDataMaxAge: minutesEnv("INIT_DATA_MAX_AGE_MINUTES", 24*time.Hour),
		RequestTimeout: secondsEnv("REQUEST_TIMEOUT_SECONDS", 10*time.Second),
		CookieSecure:   os.Getenv("COOKIE_SECURE") == "true",
	}

	if id, err := strconv.ParseInt(os.Getenv("ADMIN_TELEGRAM_ID"), 10, 64); err == nil {
		cfg.AdminTelegramID = id
	}

	if cfg.SessionSecret == "" {
		log.Println("SESSION_SECRET not set, using a random key; sessions reset on restart")
		cfg.SessionSecret = base64.StdEncoding.EncodeToString(randomBytes(32))
	}

	csrfKey := os.Getenv("CSRF_KEY")
	if decoded, err := base64.StdEncoding.DecodeString(csrfKey); err == nil && len(decoded) >= 32 {
		cfg.CSRFKey = decoded
	} else {
		if csrfKey != "" {
			log.Println("CSRF_KEY is invalid or too short, generating a random key")
		}
		cfg.CSRFKey = randomBytes(32)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func minutesEnv(key string, fallback time.Duration) time.Duration {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return time.Duration(n) * time.Minute
	}
	return fallback
}

func secondsEnv(key string, fallback time.Duration) time.Duration {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("failed to read random bytes: %v", err)
	}
	return b
}
