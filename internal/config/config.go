package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv   string
	HTTPAddr string
	LogLevel string

	DatabaseURL       string
	DBMaxConns        int
	DBMinConns        int
	DBConnLifetimeMin int

	JWTIssuer           string
	JWTAccessSecret     string
	JWTRefreshSecret    string
	AccessTokenTTLMin   int
	RefreshTokenTTLDays int

	AdminEmail    string
	AdminPassword string

	ShutdownTimeoutSec int
}

func Load() Config {
	return Config{
		AppEnv:   get("APP_ENV", "dev"),
		HTTPAddr: get("HTTP_ADDR", ":8080"),
		LogLevel: get("LOG_LEVEL", "info"),

		DatabaseURL:       get("DATABASE_URL", ""),
		DBMaxConns:        getInt("DB_MAX_CONNS", 10),
		DBMinConns:        getInt("DB_MIN_CONNS", 2),
		DBConnLifetimeMin: getInt("DB_CONN_LIFETIME_MIN", 60),

		JWTIssuer:           get("JWT_ISSUER", "biryani-cat"),
		JWTAccessSecret:     get("JWT_ACCESS_SECRET", ""),
		JWTRefreshSecret:    get("JWT_REFRESH_SECRET", ""),
		AccessTokenTTLMin:   getInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTokenTTLDays: getInt("REFRESH_TOKEN_TTL_DAYS", 30),

		AdminEmail:    get("ADMIN_EMAIL", ""),
		AdminPassword: get("ADMIN_PASSWORD", ""),

		ShutdownTimeoutSec: getInt("SHUTDOWN_TIMEOUT_SEC", 15),
	}
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
