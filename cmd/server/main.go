package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hunter28-lucky/Ecom-stores/internal/checkout"
	"github.com/Hunter28-lucky/Ecom-stores/internal/config"
	"github.com/Hunter28-lucky/Ecom-stores/internal/handlers"
	"github.com/Hunter28-lucky/Ecom-stores/internal/recorder"
	"github.com/Hunter28-lucky/Ecom-stores/internal/store"
	"github.com/Hunter28-lucky/Ecom-stores/internal/zapupi"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

func main() {
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	if err := db.Migrate("migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Templates
	templates := handlers.NewTemplateCache()
	templates.AddFunc("prevPage", func(currentPage int) int { return currentPage - 1 })
	templates.AddFunc("nextPage", func(currentPage int) int { return currentPage + 1 })

	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Gateway client and order-log dispatcher
	gateway := zapupi.New(cfg.GatewayBaseURL, cfg.GatewayTokenKey, cfg.GatewaySecretKey)
	orderLog := recorder.New(cfg.OrderLogURL)

	// 6. Handlers
	adminHandler := &handlers.AdminHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
	}
	homeHandler := &handlers.HomeHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	checkoutHandler := &handlers.CheckoutHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
		Gateway:      gateway,
		Recorder:     orderLog,
		Sessions:     checkout.NewSessions(),
	}
	apiHandler := &handlers.APIHandler{Gateway: gateway}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate limiter for checkout submissions and status polls
	rateLimiter := handlers.NewRateLimiter(2 * time.Second)

	// Public Routes
	mux.HandleFunc("/", homeHandler.Index)
	mux.HandleFunc("/product", checkoutHandler.ProductPage)
	mux.HandleFunc("POST /checkout", rateLimiter.Middleware(checkoutHandler.SubmitCheckout))
	mux.HandleFunc("/checkout/pay", checkoutHandler.PaymentPage)
	mux.HandleFunc("POST /checkout/status", rateLimiter.Middleware(checkoutHandler.CheckStatus))
	mux.HandleFunc("POST /checkout/reset", checkoutHandler.ResetCheckout)

	mux.HandleFunc("/login", adminHandler.LoginGet)
	mux.HandleFunc("POST /login", adminHandler.LoginPost)
	mux.HandleFunc("/logout", adminHandler.Logout)

	// Protected Routes
	mux.HandleFunc("/admin", adminHandler.AuthMiddleware(adminHandler.Dashboard))
	mux.HandleFunc("/admin/orders", adminHandler.AuthMiddleware(adminHandler.ListOrders))
	mux.HandleFunc("/admin/products", adminHandler.AuthMiddleware(adminHandler.ListProducts))
	mux.HandleFunc("/admin/products/new", adminHandler.AuthMiddleware(adminHandler.AddProductForm))
	mux.HandleFunc("POST /admin/products", adminHandler.AuthMiddleware(adminHandler.CreateProduct))
	mux.HandleFunc("POST /admin/products/delete", adminHandler.AuthMiddleware(adminHandler.DeleteProduct))
	mux.HandleFunc("/admin/products/edit", adminHandler.AuthMiddleware(adminHandler.EditProductForm))
	mux.HandleFunc("POST /admin/products/update", adminHandler.AuthMiddleware(adminHandler.UpdateProduct))

	// CSRF protection covers the browser-facing forms. The JSON proxy is
	// token-less by contract, so it mounts outside the CSRF wrapper.
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	root := http.NewServeMux()
	root.HandleFunc("POST /api/create-order", apiHandler.CreateOrder)
	root.HandleFunc("POST /api/order-status", apiHandler.OrderStatus)
	root.Handle("/", CSRF(mux))

	// Chain: Logger -> Security Headers -> Router
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(root),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	// Drain any order-log rows still queued before exiting.
	orderLog.Close()

	slog.Info("Server exited gracefully.")
}
