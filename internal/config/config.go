package config

import (
	"os"
	"strconv"
)

// Config holds the environment-specific settings; everything else is a
// constant of the deployment.
type Config struct {
	HTTPAddr      string
	MySQLDSN      string
	RedisAddr     string
	RedisPoolSize int
	WorkerCount   int
	QueueSize     int
}

func Load() Config {
	return Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		MySQLDSN:      getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/ledger?parseTime=true"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPoolSize: getEnvInt("REDIS_POOL_SIZE", 100),
		WorkerCount:   getEnvInt("WORKER_COUNT", 10),
		QueueSize:     getEnvInt("QUEUE_SIZE", 10000),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
