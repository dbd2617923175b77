package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn error"`
	LogFormat   string `validate:"oneof=text json"`
	Environment string `validate:"required"`
	ServiceName string `validate:"required"`
	Version     string

	StorageBackend    string `validate:"oneof=memory postgres"`
	DBUser            string `validate:"required_if=StorageBackend postgres"`
	DBPassword        string
	DBHost            string `validate:"required_if=StorageBackend postgres"`
	DBPort            string `validate:"required_if=StorageBackend postgres"`
	DBName            string `validate:"required_if=StorageBackend postgres"`
	DBMaxConns        int    `validate:"min=1"`
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	LedgerMode            string `validate:"oneof=simulated gateway"`
	LedgerURL             string `validate:"omitempty,url"`
	LedgerAPIKey          string
	GamePackageID         string
	GameObjectID          string `validate:"required_with=GamePackageID"`
	SimulatedStartBalance uint64

	BalancePollInterval time.Duration `validate:"gt=0"`
	MoveStepDelay       time.Duration `validate:"gte=0"`
	DifficultyFile      string        `validate:"omitempty,file"`
	DeadLetterPath      string        `validate:"required"`

	CORSAllowedOrigins []string      `validate:"min=1,dive,required"`
	WorkerCount        int           `validate:"min=1"`
	WorkerQueueSize    int           `validate:"min=1"`
	ShutdownTimeout    time.Duration `validate:"gt=0"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		Environment: getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName: getEnv(EnvServiceName, DefaultServiceName),
		Version:     getEnv(EnvVersion, DefaultVersion),

		StorageBackend:    strings.ToLower(getEnv(EnvStorageBackend, StorageMemory)),
		DBUser:            getEnv(EnvDBUser, DefaultDBUser),
		DBPassword:        getEnv(EnvDBPassword, DefaultDBPassword),
		DBHost:            getEnv(EnvDBHost, DefaultDBHost),
		DBPort:            getEnv(EnvDBPort, DefaultDBPort),
		DBName:            getEnv(EnvDBName, DefaultDBName),
		DBMaxConns:        getEnvAsInt(EnvDBMaxConns, DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration(EnvDBMaxConnIdleTime, DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration(EnvDBMaxConnLifetime, DefaultDBMaxConnLifetime),

		LedgerMode:            strings.ToLower(getEnv(EnvLedgerMode, LedgerSimulated)),
		LedgerURL:             getEnv(EnvLedgerURL, ""),
		LedgerAPIKey:          getEnv(EnvLedgerAPIKey, ""),
		GamePackageID:         getEnv(EnvGamePackageID, ""),
		GameObjectID:          getEnv(EnvGameObjectID, ""),
		SimulatedStartBalance: getEnvAsUint64(EnvSimulatedStartBalance, DefaultSimulatedStartBalance),

		BalancePollInterval: getEnvAsDuration(EnvBalancePollInterval, DefaultBalancePollInterval),
		MoveStepDelay:       getEnvAsDuration(EnvMoveStepDelay, DefaultMoveStepDelay),
		DifficultyFile:      getEnv(EnvDifficultyFile, ""),
		DeadLetterPath:      getEnv(EnvDeadLetterPath, DefaultDeadLetterPath),

		CORSAllowedOrigins: getEnvAsSlice(EnvCORSAllowedOrigins, DefaultCORSAllowedOrigins),
		WorkerCount:        getEnvAsInt(EnvWorkerCount, DefaultWorkerCount),
		WorkerQueueSize:    getEnvAsInt(EnvWorkerQueueSize, DefaultWorkerQueueSize),
		ShutdownTimeout:    getEnvAsDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
	}

	portStr := getEnv(EnvPort, DefaultPort)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", EnvPort, err)
	}
	cfg.Port = port

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	v, err := strconv.ParseUint(getEnv(key, ""), 10, 64)
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsSlice(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
