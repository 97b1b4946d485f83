// Command server starts the resume screener HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fairyhunter13/resume-screener/internal/adapter/ai/gemini"
	httpserver "github.com/fairyhunter13/resume-screener/internal/adapter/httpserver"
	"github.com/fairyhunter13/resume-screener/internal/adapter/observability"
	"github.com/fairyhunter13/resume-screener/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/resume-screener/internal/adapter/snapshot"
	"github.com/fairyhunter13/resume-screener/internal/adapter/textextractor/local"
	"github.com/fairyhunter13/resume-screener/internal/app"
	"github.com/fairyhunter13/resume-screener/internal/config"
	"github.com/fairyhunter13/resume-screener/internal/domain"
	"github.com/fairyhunter13/resume-screener/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		slog.Error("db migrate failed", slog.Any("error", err))
		os.Exit(1)
	}

	resumeRepo := postgres.NewResumeRepo(pool)
	vacancyRepo := postgres.NewVacancyRepo(pool)
	applicationRepo := postgres.NewApplicationRepo(pool)
	snapshots := snapshot.New(cfg.SnapshotDir)

	// The oracle is optional: without a credential the rank endpoint reports
	// "not configured" and everything else works unchanged.
	var oracle domain.Generator
	if cfg.OracleConfigured() {
		client, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			slog.Error("oracle init failed", slog.Any("error", err))
			os.Exit(1)
		}
		oracle = client
		slog.Info("ranking oracle configured", slog.String("model", client.Model()))
	} else {
		slog.Warn("GEMINI_API_KEY not set; ranking disabled")
	}

	ingest := usecase.NewIngestService(resumeRepo, local.New(), snapshots)
	vacancies := usecase.NewVacancyService(vacancyRepo, resumeRepo, applicationRepo, snapshots)
	match := usecase.NewMatchService(vacancyRepo, resumeRepo)
	rank := usecase.NewRankService(vacancyRepo, resumeRepo, oracle)

	srv := httpserver.NewServer(cfg, ingest, vacancies, match, rank)
	handler := app.BuildRouter(cfg, srv)

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		slog.Info("server listening", slog.Int("port", cfg.Port))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", slog.Any("error", err))
	}
}
