/*
Package main is the entry point for the Lancini web frontend.

It is responsible for loading configuration, initializing the global logging system,
wiring the backend API client, asset resolver and page renderer, setting up the HTTP
server, and gracefully handling operating system interrupt signals (SIGINT, SIGTERM)
to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"lancini/internal/app/api"
	"lancini/internal/app/storage"
	"lancini/internal/configs"
	"lancini/internal/handler"
	"lancini/internal/pkg/auth/guard"
	"lancini/internal/pkg/auth/jwt"
	"lancini/internal/pkg/limiter"
	"lancini/internal/pkg/logx"
	"lancini/internal/pkg/metrics"
	"lancini/internal/view"
)

func main() {
	if err := configs.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Str("api_url", cfg.APIURL).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Bool("s3_assets", cfg.S3Enabled()).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	client, err := api.New(api.Config{
		BaseURL:       cfg.APIURL,
		SessionCookie: configs.SessionCookieName,
		SecureCookies: cfg.SecureCookies,
		Transport:     m.InstrumentTransport(http.DefaultTransport),
	})
	if err != nil {
		logx.Fatal(err, "Failed to create backend API client")
	}

	assets, err := storage.NewResolver(ctx, storage.ServiceConfig{
		AssetBaseURL:      cfg.AssetBaseURL,
		S3BucketName:      cfg.S3BucketName,
		S3Endpoint:        cfg.S3Endpoint,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		logx.Fatal(err, "Failed to initialize asset resolver")
	}

	renderer, err := view.New()
	if err != nil {
		logx.Fatal(err, "Failed to parse page templates")
	}

	deps := &handler.AppDeps{
		Config:         cfg,
		API:            client,
		Renderer:       renderer,
		Assets:         assets,
		Signer:         jwt.NewSigner(cfg.FormSecret),
		Metrics:        m,
		Policy:         guard.DefaultPolicy(configs.SessionCookieName),
		LoginLimiter:   limiter.NewIPRateLimiter(ctx, rate.Limit(handler.LoginRate), handler.LoginBurst),
		FormLimiter:    limiter.NewIPRateLimiter(ctx, rate.Limit(handler.FormRate), handler.FormBurst),
		SessionLimiter: limiter.NewIPRateLimiter(ctx, rate.Limit(handler.SessionRate), handler.SessionBurst),
	}

	// Setup HTTP server and routes
	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		// A page makes up to three sequential backend calls (session check, fetch, CV save).
		WriteTimeout: 3*api.DefaultTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info("Lancini web starting", "addr", "http://localhost"+serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	logx.Info("Server gracefully stopped.")
}
