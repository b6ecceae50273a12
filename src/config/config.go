package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// const dsn = "host=localhost user=postgres password=password dbname=shareit port=5432 sslmode=disable TimeZone=Europe/Moscow"

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

func GetServerPort() string {
	return getEnv("SERVER_PORT", "9090")
}

func GetGatewayPort() string {
	return getEnv("GATEWAY_PORT", "8080")
}

// GetServerURL is the base URL the gateway forwards to.
func GetServerURL() string {
	return getEnv("SHAREIT_SERVER_URL", "http://localhost:9090")
}

func GetRedisURL() string {
	return os.Getenv("REDIS_HOST")
}

func GetStoreKind() string {
	return getEnv("STORE", "postgres")
}

func GetUserCacheTTL() time.Duration {
	return getDuration("USER_CACHE_TTL", 10*time.Minute)
}

func GetGatewayTimeout() time.Duration {
	return getDuration("GATEWAY_TIMEOUT", 15*time.Second)
}

func IsLocal() bool {
	return os.Getenv("API_ENV") == "local"
}

func IsMaintenance() bool {
	mm, err := strconv.ParseBool(os.Getenv("MAINTENANCE_MODE"))
	return err == nil && mm
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// Wire format of booking and comment timestamps. No zone: values are local time.
const TIME_PARSE_FORMAT = "2006-01-02T15:04:05"

const SHARER_USER_HEADER = "X-Sharer-User-Id"

const REQUEST_ID_HEADER = "X-Request-Id"
