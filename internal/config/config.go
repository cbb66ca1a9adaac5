// Package config loads the task platform's process-wide configuration
// from the environment, following the teacher's godotenv-then-os.Getenv
// pattern, generalized from a single HTTP port to the full set of
// settings the platform's components need.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the task platform's process-wide configuration.
type Config struct {
	Port            int
	Environment     string
	ShutdownTimeout time.Duration

	DBName         string
	DBHost         string
	DBPort         string
	DBUser         string
	DBSecret       string
	DBSSLMode      string
	GRPCHealthPort int

	// WorkerPoolSize caps how many FetchJob worker Tasks run concurrently
	// across the platform. 0 means unbounded.
	WorkerPoolSize int
}

// Load reads a .env file if present, then overlays environment
// variables, the way the teacher's LoadConfig does for a single PORT
// variable. Unlike the teacher, a missing .env file is not fatal: in
// production the environment is normally set by the deployment system,
// not a checked-in .env file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config: loading .env: %w", err)
	}

	port, err := intEnv("PORT", 8080)
	if err != nil {
		return Config{}, err
	}

	grpcHealthPort, err := intEnv("GRPC_HEALTH_PORT", 9090)
	if err != nil {
		return Config{}, err
	}

	shutdownSeconds, err := intEnv("SHUTDOWN_TIMEOUT_SECONDS", 30)
	if err != nil {
		return Config{}, err
	}

	workerPoolSize, err := intEnv("WORKER_POOL_SIZE", 10)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:            port,
		Environment:     stringEnv("APP_ENV", "development"),
		ShutdownTimeout: time.Duration(shutdownSeconds) * time.Second,
		DBName:          os.Getenv("DB_NAME"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          stringEnv("DB_PORT", "5432"),
		DBUser:          os.Getenv("DB_USER"),
		DBSecret:        os.Getenv("DB_PASS"),
		DBSSLMode:       stringEnv("DB_SSL_MODE", "disable"),
		GRPCHealthPort:  grpcHealthPort,
		WorkerPoolSize:  workerPoolSize,
	}

	return cfg, nil
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return n, nil
}
