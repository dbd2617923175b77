package bootstrap

import (
	"log/slog"

	"github.com/osse101/SnakeCrawl_Go/internal/config"
	"github.com/osse101/SnakeCrawl_Go/internal/logger"
)

// SetupLogger installs the process-wide logger and reports the loaded configuration.
func SetupLogger(cfg *config.Config) *slog.Logger {
	l := logger.InitLogger(logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
	))

	l.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "format", cfg.LogFormat)
	l.Info(LogMsgStartingSnakeCrawl,
		"environment", cfg.Environment,
		"version", cfg.Version,
		"storage", cfg.StorageBackend,
		"ledger", cfg.LedgerMode)

	l.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port,
		"workers", cfg.WorkerCount)

	for _, w := range cfg.Warnings() {
		l.Warn(LogMsgConfigWarning, "warning", w)
	}

	return l
}
