package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"universal-shop/internal/auth"
	"universal-shop/internal/config"
	"universal-shop/internal/handlers"
	"universal-shop/internal/middleware"
	"universal-shop/internal/shop"
	"universal-shop/internal/telegram"
)

func SetupRouter(cfg config.Config, logger zerolog.Logger, templates *handlers.TemplateCache) *mux.Router {
	shopClient := shop.NewClient(cfg.BackendURL, cfg.RequestTimeout, logger)
	botClient := telegram.NewClient(cfg.BotToken, cfg.TelegramAPIURL, cfg.RequestTimeout, logger)
	tokens := auth.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL)

	sessionHandler := handlers.NewSessionHandler(tokens, cfg.BotToken, cfg.AdminTelegramID, cfg.InitDataMaxAge, cfg.SessionTTL, cfg.CookieSecure, logger)
	dashboardHandler := handlers.NewDashboardHandler(shopClient, templates, logger)
	paymentHandler := handlers.NewPaymentHandler(shopClient, templates, logger)
	adminHandler := handlers.NewAdminHandler(shopClient, templates, logger)
	proxyHandler := handlers.NewProxyHandler(botClient, logger)

	r := mux.NewRouter()

	orderLimiter := middleware.NewRateLimiter(rate.Limit(5), 10)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.PerformanceMonitoring(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(middleware.Session(tokens, logger))

	fileServer := http.FileServer(http.Dir("./static"))
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static", fileServer))

	r.HandleFunc("/", dashboardHandler.Index).Methods("GET")
	r.HandleFunc("/products/{id:[0-9]+}/view", dashboardHandler.TrackView).Methods("POST")
	r.HandleFunc("/products/{id:[0-9]+}/buy", paymentHandler.BuyForm).Methods("GET")
	r.HandleFunc("/view-history/{id:[0-9]+}/delete", dashboardHandler.DeleteViewHistory).Methods("POST")

	// A single in-flight submit is enforced in the page; the limiter backs
	// that up against rapid repeated activation.
	r.Handle("/orders", orderLimiter.Middleware()(http.HandlerFunc(paymentHandler.CreateOrder))).Methods("POST")

	session := r.PathPrefix("/auth").Subrouter()
	session.Use(middleware.JSONOnly())
	session.HandleFunc("/session", sessionHandler.Create).Methods("POST")

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin(logger))
	admin.HandleFunc("", adminHandler.Panel).Methods("GET")
	admin.HandleFunc("/products", adminHandler.CreateProduct).Methods("POST")
	admin.HandleFunc("/games", adminHandler.CreateGame).Methods("POST")

	// The proxy spends the bot credential, so it is gated server-side as
	// well as hidden from the UI.
	tg := r.PathPrefix("/telegram").Subrouter()
	tg.Use(middleware.RequireAdmin(logger))
	tg.Use(middleware.JSONOnly())
	tg.HandleFunc("/proxy", proxyHandler.Forward).Methods("POST")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}
