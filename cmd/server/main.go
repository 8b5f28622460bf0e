// Package main is the entrypoint for the TalentFlow API server.
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
	"time"

	"github.com/joho/godotenv"
	"github.com/talentflow-hq/talentflow/internal/api"
	"github.com/talentflow-hq/talentflow/internal/api/handler"
	"github.com/talentflow-hq/talentflow/internal/assessment"
	"github.com/talentflow-hq/talentflow/internal/config"
	"github.com/talentflow-hq/talentflow/internal/mirror"
	"github.com/talentflow-hq/talentflow/internal/pipeline"
	"github.com/talentflow-hq/talentflow/internal/seed"
	"github.com/talentflow-hq/talentflow/internal/simulate"
	"github.com/talentflow-hq/talentflow/internal/store"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "env", cfg.Server.Env, "mirror_backend", cfg.Mirror.Backend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := mirror.New(ctx, cfg.Mirror)
	if err != nil {
		return fmt.Errorf("create mirror: %w", err)
	}
	defer m.Close()

	if err := m.Ping(ctx); err != nil {
		return fmt.Errorf("ping mirror: %w", err)
	}
	slog.Info("mirror connected", "backend", cfg.Mirror.Backend)

	st := store.NewMemoryStore()

	if cfg.Seed.OnEmpty {
		if err := seed.New(st, m).Run(ctx, cfg.Seed.Jobs, cfg.Seed.Candidates); err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
	}

	policy := simulate.New(
		cfg.Simulate.LatencyMin, cfg.Simulate.LatencyMax,
		cfg.Simulate.CreateFailureRate, cfg.Simulate.ReorderFailureRate,
	)

	candidates := pipeline.New(st, m)
	assessments := assessment.New(st, m)

	deps := api.Dependencies{
		Policy: policy,

		HealthHandler: handler.NewHealthHandler(m),

		ListJobs:   handler.NewListJobsHandler(st),
		CreateJob:  handler.NewCreateJobHandler(st, m, policy),
		UpdateJob:  handler.NewUpdateJobHandler(st, m),
		ReorderJob: handler.NewReorderJobHandler(st, m, policy),

		ListCandidates:  handler.NewListCandidatesHandler(st),
		CreateCandidate: handler.NewCreateCandidateHandler(candidates),
		UpdateCandidate: handler.NewUpdateCandidateHandler(candidates),
		GetTimeline:     handler.NewTimelineHandler(candidates),

		GetAssessment:    handler.NewGetAssessmentHandler(assessments),
		PutAssessment:    handler.NewPutAssessmentHandler(assessments),
		SubmitAssessment: handler.NewSubmitAssessmentHandler(assessments),
	}

	router := api.NewRouter(deps)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
