// Package main is the entry point for the NeighborFit API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/neighborfit/neighborfit/internal/activity"
	"github.com/neighborfit/neighborfit/internal/api"
	"github.com/neighborfit/neighborfit/internal/auth"
	"github.com/neighborfit/neighborfit/internal/config"
	"github.com/neighborfit/neighborfit/internal/geo"
	"github.com/neighborfit/neighborfit/internal/mapsync"
	"github.com/neighborfit/neighborfit/internal/middleware"
	"github.com/neighborfit/neighborfit/internal/payment"
	"github.com/neighborfit/neighborfit/internal/selection"
)

func main() {
	help := flag.Bool("help", false, "display help message")
	configFile := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	if *help {
		fmt.Println("NeighborFit API Server")
		fmt.Println()
		fmt.Println("Usage: api [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	cfg, errs := config.Load(*configFile)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, "config error:", err)
		}
		os.Exit(1)
	}

	logger := middleware.NewLogger(cfg.Env)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "summary", cfg.LogSummary())

	handler, err := buildHandler(cfg)
	if err != nil {
		logger.Error("failed to build server", "error", err)
		os.Exit(1)
	}
	handler = middleware.RequestID(middleware.Logging(logger)(handler))

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildHandler wires the full service from configuration: metrics
// registry, seeded activity store, map pipeline, payments, session
// tokens, routes, CORS, and HTTP metrics. Request-id and logging
// middleware are layered on by the caller, which owns the logger.
func buildHandler(cfg *config.Config) (http.Handler, error) {
	// Metrics registry with process and Go runtime collectors
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	httpMetrics := middleware.NewMetrics()
	if err := httpMetrics.Register(registry); err != nil {
		return nil, fmt.Errorf("failed to register http metrics: %w", err)
	}
	mapMetrics := mapsync.NewMetrics()
	if err := mapMetrics.Register(registry); err != nil {
		return nil, fmt.Errorf("failed to register map metrics: %w", err)
	}

	// Core state: seeded activity store, selection, map pipeline
	store := activity.NewStore(activity.SeedActivities(),
		activity.WithCapacityEnforcement(cfg.CapacityEnforced))
	sel := selection.NewController()

	broadcaster := mapsync.NewBroadcaster()
	camera := mapsync.CameraConfig{
		OverviewZoom:   cfg.MapOverviewZoom,
		SelectZoom:     cfg.MapSelectZoom,
		DetailZoom:     cfg.MapDetailZoom,
		UserZoom:       cfg.MapUserZoom,
		FlyToDuration:  time.Duration(cfg.MapFlyToDurationMS) * time.Millisecond,
		DetailDuration: time.Duration(cfg.MapDetailDurationMS) * time.Millisecond,
		FitPadding:     cfg.MapFitPadding,
		FitDuration:    time.Duration(cfg.MapFitDurationMS) * time.Millisecond,
	}
	mapCtrl := mapsync.NewController(broadcaster, camera, mapMetrics)
	// The broadcast surface needs no async initialization; marker
	// operations flow to whichever websocket clients are connected.
	mapCtrl.Ready()

	// Payments: failed checkouts roll the optimistic join back. The
	// rollback is state-checked so a late failure callback cannot
	// re-join a viewer who already left.
	stripeClient := payment.NewStripeClient(cfg.StripeAPIKey)
	payments := payment.NewService(
		stripeClient,
		payment.NewInMemoryRepository(),
		store.LeaveIfJoined,
		cfg.PaymentCurrency,
		cfg.PaymentSuccessURL,
		cfg.PaymentCancelURL,
	)

	sessions := auth.NewSessionService(cfg.SessionSecret)
	fallback := geo.Point{Lat: cfg.DefaultCenterLat, Lng: cfg.DefaultCenterLng}

	activityHandlers := api.NewActivityHandlers(store, mapCtrl, payments)
	sessionHandlers := api.NewSessionHandlers(store, sel, mapCtrl, sessions, fallback)
	paymentHandlers := api.NewPaymentHandlers(payments)
	mapWSHandlers := api.NewMapWSHandlers(broadcaster, mapCtrl, store)
	healthHandlers := api.NewHealthHandlers()

	mux := http.NewServeMux()
	mux.HandleFunc("/activities", activityHandlers.List)
	mux.HandleFunc("/activities/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			activityHandlers.Join(w, r)
			return
		}
		activityHandlers.Get(w, r)
	})
	mux.HandleFunc("/session", sessionHandlers.Create)
	mux.HandleFunc("/session/select", sessionHandlers.Select)
	mux.HandleFunc("/session/locate", sessionHandlers.Locate)
	mux.HandleFunc("/payments/result", paymentHandlers.Result)
	mux.HandleFunc("/map/ws", mapWSHandlers.ServeWS)
	mux.HandleFunc("/healthz", healthHandlers.Health)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			api.WriteError(w, r.Context(), http.StatusNotFound, api.ErrCodeNotFound, "The requested resource was not found")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"service":"neighborfit-api","version":"0.1.0"}`)); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	var handler http.Handler = mux
	handler = middleware.HTTPMetrics(httpMetrics)(handler)
	handler = middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   corsOrigins(),
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})(handler)

	return handler, nil
}

// corsOrigins reads the comma-separated CORS_ALLOWED_ORIGINS env var.
// Empty means CORS is disabled (same-origin deployments).
func corsOrigins() []string {
	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	if raw == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
