package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ListenAddr     string
	Pair           string
	PollInterval   time.Duration
	CandleInterval string
	SeedQuote      decimal.Decimal
	RedisAddr      string // empty means in-memory cache
	CacheTTL       time.Duration
	LogLevel       logrus.Level
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found")
	}

	cfg := &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		Pair:           getEnv("PAIR", "BTC/USDT"),
		PollInterval:   getDuration("POLL_INTERVAL", 5*time.Second),
		CandleInterval: getEnv("CANDLE_INTERVAL", "15m"),
		SeedQuote:      getDecimal("SEED_QUOTE", decimal.NewFromInt(10000)),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		CacheTTL:       getDuration("CACHE_TTL", 5*time.Minute),
		LogLevel:       getLevel("LOG_LEVEL", logrus.InfoLevel),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		logrus.Warnf("invalid %s, using %s", key, def)
	}
	return def
}

func getDecimal(key string, def decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
		logrus.Warnf("invalid %s, using %s", key, def)
	}
	return def
}

func getLevel(key string, def logrus.Level) logrus.Level {
	if v := os.Getenv(key); v != "" {
		if l, err := logrus.ParseLevel(v); err == nil {
			return l
		}
	}
	return def
}
