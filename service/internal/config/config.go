// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/dog/service/internal/cache"
)

// Config holds the environment settings of the simulator and match adapter.
type Config struct {
	LogLevel  logrus.Level
	Seed      uint64 // 0 picks a seed from the clock
	MaxRounds uint16 // 0 = unlimited

	RedisAddr string // empty disables the action log
	RedisDB   int
	QueueName string
}

// Load reads .env files (default ".env"; a missing file is not an error) and
// then the environment. Variables already set take precedence over files.
//   - DOG_LOG_LEVEL (default "info")
//   - DOG_SEED (default 0)
//   - DOG_MAX_ROUNDS (default 0)
//   - REDIS_ADDR (default empty)
//   - REDIS_DB (default 0)
//   - HISTORIAN_QUEUE_NAME (default cache.DefaultQueueName)
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load env file: %w", err)
	}

	level, err := logrus.ParseLevel(getEnv("DOG_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("DOG_LOG_LEVEL: %w", err)
	}
	seed, err := strconv.ParseUint(getEnv("DOG_SEED", "0"), 10, 64)
	if err != nil {
		return Config{}, fmt.Errorf("DOG_SEED: %w", err)
	}
	rounds, err := strconv.ParseUint(getEnv("DOG_MAX_ROUNDS", "0"), 10, 16)
	if err != nil {
		return Config{}, fmt.Errorf("DOG_MAX_ROUNDS: %w", err)
	}

	return Config{
		LogLevel:  level,
		Seed:      seed,
		MaxRounds: uint16(rounds),
		RedisAddr: getEnv("REDIS_ADDR", ""),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		QueueName: getEnv("HISTORIAN_QUEUE_NAME", cache.DefaultQueueName),
	}, nil
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return def
	}
	return v
}
