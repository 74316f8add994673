package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/contactdesk/backend/internal/config"
	"github.com/contactdesk/backend/internal/handler"
	"github.com/contactdesk/backend/internal/logging"
	"github.com/contactdesk/backend/internal/repository"
	"github.com/contactdesk/backend/internal/service"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	contactRepo := repository.NewPgContactRepository(pool)
	contactService := service.NewContactService(contactRepo)

	h := handler.New(cfg.FrontendURL)
	contactHandler := handler.NewContactHandler(contactService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /api/contacts", contactHandler.List)
	mux.HandleFunc("POST /api/contacts", contactHandler.Create)
	mux.HandleFunc("DELETE /api/contacts/{id}", contactHandler.Delete)

	limiter := handler.NewRateLimiter(cfg.RateLimitPerMinute)
	chain := h.CORS(handler.SecurityHeaders(limiter.Middleware(handler.RequestLogger(mux))))

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      chain,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
