package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/renoquote/backend/internal/catalog"
	"github.com/renoquote/backend/internal/config"
	"github.com/renoquote/backend/internal/handler"
	"github.com/renoquote/backend/internal/logging"
	"github.com/renoquote/backend/internal/repository"
	"github.com/renoquote/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("")
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	rateRepo := repository.NewPgRateRepository(pool)
	multipliersRepo := repository.NewPgMultipliersRepository(pool)
	quoteRepo := repository.NewPgQuoteRepository(pool)

	loader := catalog.NewLoader(rateRepo, multipliersRepo, cfg.CatalogFetchTimeout)
	driftCounter := service.NewDriftCounter()
	quoteService := service.NewQuoteService(loader, quoteRepo, driftCounter)
	rateService := service.NewRateService(loader)

	h := handler.New(pool, driftCounter, cfg.FrontendURL)
	quoteHandler := handler.NewQuoteHandler(quoteService)
	rateHandler := handler.NewRateHandler(rateService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	// 料金カタログ（読み取り専用）
	mux.HandleFunc("GET /api/rates", rateHandler.List)
	mux.HandleFunc("GET /api/multipliers", rateHandler.Multipliers)

	// 見積もり API
	mux.HandleFunc("POST /api/quotes/calculate", quoteHandler.Calculate)
	mux.HandleFunc("POST /api/quotes", quoteHandler.Submit)
	mux.HandleFunc("GET /api/quotes/{id}", quoteHandler.Get)
	mux.HandleFunc("GET /api/quotes/{id}/export", quoteHandler.Export)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := handler.NewRateLimiter(cfg.RateLimitPerMinute)
	go limiter.Run(ctx, 5*time.Minute)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler.RequestLogger(handler.SecurityHeaders(h.CORS(limiter.Middleware(mux)))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
