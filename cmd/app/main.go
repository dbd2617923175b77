package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/osse101/SnakeCrawl_Go/internal/balance"
	"github.com/osse101/SnakeCrawl_Go/internal/board"
	"github.com/osse101/SnakeCrawl_Go/internal/bootstrap"
	"github.com/osse101/SnakeCrawl_Go/internal/config"
	"github.com/osse101/SnakeCrawl_Go/internal/history"
	"github.com/osse101/SnakeCrawl_Go/internal/leaderboard"
	"github.com/osse101/SnakeCrawl_Go/internal/player"
	"github.com/osse101/SnakeCrawl_Go/internal/round"
	"github.com/osse101/SnakeCrawl_Go/internal/scheduler"
	"github.com/osse101/SnakeCrawl_Go/internal/server"
	"github.com/osse101/SnakeCrawl_Go/internal/settlement"
	"github.com/osse101/SnakeCrawl_Go/internal/sse"
	"github.com/osse101/SnakeCrawl_Go/internal/utils"
	"github.com/osse101/SnakeCrawl_Go/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	bootstrap.SetupLogger(cfg)

	// match GOMAXPROCS to the container CPU quota
	undoMaxProcs, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		slog.Info(fmt.Sprintf(format, args...))
	}))
	if err != nil {
		slog.Warn("Failed to set GOMAXPROCS", "error", err)
	}
	defer undoMaxProcs()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Application stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}

	hub := sse.NewHub()
	hub.Start()
	bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{EventBus: bus, Hub: hub})

	components := bootstrap.ShutdownComponents{
		Hub:                hub,
		ResilientPublisher: publisher,
	}
	shutdown := func() {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		bootstrap.GracefulShutdown(sctx, components)
	}

	st, dbPool, err := bootstrap.InitializeStore(ctx, cfg)
	if err != nil {
		shutdown()
		return err
	}
	if dbPool != nil {
		components.DBPool = dbPool
	}

	led, err := bootstrap.InitializeLedger(cfg)
	if err != nil {
		shutdown()
		return err
	}

	table, err := bootstrap.LoadDifficulties(cfg)
	if err != nil {
		shutdown()
		return err
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start()
	components.WorkerPool = pool

	balances := balance.NewService(led, balance.Options{Publisher: publisher})
	players := player.NewService(st)
	histories := history.NewService(st)

	coordinator := settlement.NewCoordinator(led, balances, settlement.Config{
		PackageID: cfg.GamePackageID,
		ObjectID:  cfg.GameObjectID,
	})

	roundService := round.NewService(round.Dependencies{
		Boards:    board.NewGenerator(table),
		Settler:   coordinator,
		History:   histories,
		Profiles:  players,
		Jobs:      pool,
		Publisher: publisher,
		Dice:      utils.SecureRandomInt,
		StepDelay: cfg.MoveStepDelay,
	})

	sched := scheduler.New(pool)
	sched.Schedule(cfg.BalancePollInterval, balances.RefreshJob())
	components.Scheduler = sched

	deps := server.Dependencies{
		Rounds:      roundService,
		Players:     players,
		History:     histories,
		Balances:    balances,
		Leaderboard: leaderboard.NewService(led, bootstrap.LeaderboardEventType(cfg)),
		Hub:         hub,
	}
	if dbPool != nil {
		deps.DBPool = dbPool
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		Version:        cfg.Version,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	}, deps)
	components.Server = srv

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
		shutdown()
		return nil
	case err, ok := <-errCh:
		shutdown()
		if ok && err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}
}
