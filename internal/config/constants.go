package config

import "time"

// Environment variable names
const (
	EnvPort                  = "PORT"
	EnvLogLevel              = "LOG_LEVEL"
	EnvLogFormat             = "LOG_FORMAT"
	EnvEnvironment           = "ENVIRONMENT"
	EnvServiceName           = "SERVICE_NAME"
	EnvVersion               = "VERSION"
	EnvStorageBackend        = "STORAGE_BACKEND"
	EnvDBUser                = "DB_USER"
	EnvDBPassword            = "DB_PASSWORD"
	EnvDBHost                = "DB_HOST"
	EnvDBPort                = "DB_PORT"
	EnvDBName                = "DB_NAME"
	EnvDBMaxConns            = "DB_MAX_CONNS"
	EnvDBMaxConnIdleTime     = "DB_MAX_CONN_IDLE_TIME"
	EnvDBMaxConnLifetime     = "DB_MAX_CONN_LIFETIME"
	EnvLedgerMode            = "LEDGER_MODE"
	EnvLedgerURL             = "LEDGER_URL"
	EnvLedgerAPIKey          = "LEDGER_API_KEY"
	EnvGamePackageID         = "GAME_PACKAGE_ID"
	EnvGameObjectID          = "GAME_OBJECT_ID"
	EnvBalancePollInterval   = "BALANCE_POLL_INTERVAL"
	EnvMoveStepDelay         = "MOVE_STEP_DELAY"
	EnvDifficultyFile        = "DIFFICULTY_FILE"
	EnvDeadLetterPath        = "DEAD_LETTER_PATH"
	EnvSimulatedStartBalance = "SIMULATED_START_BALANCE"
	EnvCORSAllowedOrigins    = "CORS_ALLOWED_ORIGINS"
	EnvWorkerCount           = "WORKER_COUNT"
	EnvWorkerQueueSize       = "WORKER_QUEUE_SIZE"
	EnvShutdownTimeout       = "SHUTDOWN_TIMEOUT"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Ledger modes
const (
	LedgerSimulated = "simulated"
	LedgerGateway   = "gateway"
)

// Defaults
const (
	DefaultPort                  = "8080"
	DefaultLogLevel              = "info"
	DefaultLogFormat             = "text"
	DefaultEnvironment           = "dev"
	DefaultServiceName           = "snake-crawl"
	DefaultVersion               = "dev"
	DefaultDBUser                = "postgres"
	DefaultDBPassword            = "postgres"
	DefaultDBHost                = "localhost"
	DefaultDBPort                = "5432"
	DefaultDBName                = "snakecrawl"
	DefaultDBMaxConns            = 20
	DefaultDBMaxConnIdleTime     = 5 * time.Minute
	DefaultDBMaxConnLifetime     = 30 * time.Minute
	DefaultBalancePollInterval   = 10 * time.Second
	DefaultMoveStepDelay         = 100 * time.Millisecond
	DefaultDeadLetterPath        = "logs/deadletter.jsonl"
	DefaultSimulatedStartBalance = 100 * 100_000_000
	DefaultCORSAllowedOrigins    = "*"
	DefaultWorkerCount           = 4
	DefaultWorkerQueueSize       = 256
	DefaultShutdownTimeout       = 15 * time.Second
)

// Placeholder values shipped in .env.example
const (
	ExamplePassword = "change_this_secure_password"
	ExampleAPIKey   = "generate_with_openssl_rand_hex_32"
)
