package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/SnakeCrawl_Go/internal/database"
	"github.com/osse101/SnakeCrawl_Go/internal/event"
	"github.com/osse101/SnakeCrawl_Go/internal/scheduler"
	"github.com/osse101/SnakeCrawl_Go/internal/server"
	"github.com/osse101/SnakeCrawl_Go/internal/sse"
	"github.com/osse101/SnakeCrawl_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Any of them may be nil.
type ShutdownComponents struct {
	Server             *server.Server
	Hub                *sse.Hub
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	ResilientPublisher *event.ResilientPublisher
	DBPool             database.Pool
}

// GracefulShutdown stops the application in dependency order:
//  1. SSE hub, so open event streams return
//  2. HTTP server, so no new rounds start
//  3. Scheduler, then the worker pool, letting queued settlements finish
//  4. Event publisher, flushing retries to the dead-letter file
//  5. Database pool
//
// Errors are logged and never stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Hub != nil {
		components.Hub.Stop()
	}

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}

	if components.WorkerPool != nil {
		if err := components.WorkerPool.Shutdown(ctx); err != nil {
			slog.Error(LogMsgWorkerPoolShutdownFailed, "error", err)
		}
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.DBPool != nil {
		components.DBPool.Close()
		slog.Info(LogMsgDatabaseClosed)
	}

	slog.Info(LogMsgServerStopped)
}
