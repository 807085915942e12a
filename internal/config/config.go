// Package config loads application settings from the environment.
// All tunables are collected into a Config struct once at startup and
// passed explicitly into the services that need them.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetFloatEnv returns a float environment variable or a default value.
func GetFloatEnv(key string, defaultVal float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// FraudConfig holds default thresholds for fraud checks. Individual rules
// may override these through their own rule config.
type FraudConfig struct {
	VelocityCheckEnabled      bool
	MaxTransactionsPerHour    int
	SuspiciousAmountThreshold float64
}

// Config holds every tunable the money-movement core needs.
type Config struct {
	// TransferFeeRate is the fee charged on transfers, e.g. 0.01 for 1%.
	TransferFeeRate float64

	// IdempotencyTTL is how long an idempotency key blocks replays.
	IdempotencyTTL time.Duration

	// SchedulerInterval is how often the recurring payment loop polls.
	SchedulerInterval time.Duration

	Fraud FraudConfig
}

// Load builds a Config from the environment with sensible defaults.
func Load() Config {
	return Config{
		TransferFeeRate:   GetFloatEnv("TRANSFER_FEE_RATE", 0.01),
		IdempotencyTTL:    GetDurationEnv("IDEMPOTENCY_TTL", 24*time.Hour),
		SchedulerInterval: GetDurationEnv("SCHEDULER_INTERVAL", 60*time.Second),
		Fraud: FraudConfig{
			VelocityCheckEnabled:      GetEnv("FRAUD_VELOCITY_CHECK_ENABLED", "true") == "true",
			MaxTransactionsPerHour:    GetIntEnv("FRAUD_MAX_TRANSACTIONS_PER_HOUR", 10),
			SuspiciousAmountThreshold: GetFloatEnv("FRAUD_SUSPICIOUS_AMOUNT_THRESHOLD", 100000),
		},
	}
}
