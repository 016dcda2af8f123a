package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nephisha/next24-planner-api/internal/adapters/httpapi"
	memidem "github.com/nephisha/next24-planner-api/internal/adapters/memory/idempotency"
	memrepo "github.com/nephisha/next24-planner-api/internal/adapters/memory/itineraryrepo"
	"github.com/nephisha/next24-planner-api/internal/adapters/travelapi"
	"github.com/nephisha/next24-planner-api/internal/app/itineraries"
	"github.com/nephisha/next24-planner-api/internal/app/suggestions"
	"github.com/nephisha/next24-planner-api/internal/domain"
	"github.com/nephisha/next24-planner-api/internal/platform/clock"
	"github.com/nephisha/next24-planner-api/internal/platform/config"
	"github.com/nephisha/next24-planner-api/internal/platform/logger"
	"github.com/nephisha/next24-planner-api/internal/platform/metrics"
)

func main() {
	cfg := config.Load()
	log := logger.New()

	seed := domain.NoSeed
	if cfg.SeedDemoActivities {
		seed = domain.DemoSeed
	}

	repo := memrepo.NewRepo()
	clk := clock.NewSystemClock()

	var travel *travelapi.Client
	if cfg.TravelAPIBaseURL != "" {
		travel = travelapi.New(cfg.TravelAPIBaseURL, nil)
	}

	srv := &httpapi.Server{
		Itineraries: itineraries.NewService(repo, clk, seed),
		Suggestions: suggestions.NewService(repo, nil),
		Travel:      travel,
		Idem:        memidem.NewStore(),
		Log:         log,
		Metrics:     metrics.New("planner"),
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.NewRouter(srv),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server starting", "port", cfg.Port, "seedDemo", cfg.SeedDemoActivities)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
}
