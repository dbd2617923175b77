package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/SnakeCrawl_Go/internal/config"
	"github.com/osse101/SnakeCrawl_Go/internal/event"
)

// InitializeEventSystem builds the in-process bus and the retrying publisher
// round and balance services publish through. Entries already in the
// dead-letter log from earlier runs are reported, not replayed.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	path := cfg.DeadLetterPath
	if path == "" {
		path = config.DefaultDeadLetterPath
	}
	if err := os.MkdirAll(filepath.Dir(path), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	backlog, err := event.ReadDeadLetters(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		slog.Warn(LogMsgDeadLetterUnreadable, "path", path, "error", err)
	case len(backlog) > 0:
		slog.Warn(LogMsgDeadLetterBacklog, "path", path, "entries", len(backlog))
	}

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, EventDefaultMaxRetries, EventDefaultRetryDelay, path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", path)
	return bus, publisher, nil
}
