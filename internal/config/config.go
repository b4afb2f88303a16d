package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Auth
		Blacklist
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret            string
		AccessTokenLifetime  time.Duration
		RefreshTokenLifetime time.Duration
		BcryptCost           int
		MaxLoginAttempts     int
		RateLimitWindow      time.Duration
		LockoutDuration      time.Duration
	}
	Blacklist struct {
		CleanupSchedule string // Cron format, e.g. "@hourly"
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_jwt_secret", "")
	v.SetDefault("auth_access_token_lifetime", "30m")
	v.SetDefault("auth_refresh_token_lifetime", "24h")
	v.SetDefault("auth_bcrypt_cost", 12) // bcrypt cost factor
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "30m")

	// Blacklist cleanup defaults
	v.SetDefault("blacklist_cleanup_schedule", "@hourly")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			JWTSecret:            v.GetString("AUTH_JWT_SECRET"),
			AccessTokenLifetime:  v.GetDuration("AUTH_ACCESS_TOKEN_LIFETIME"),
			RefreshTokenLifetime: v.GetDuration("AUTH_REFRESH_TOKEN_LIFETIME"),
			BcryptCost:           v.GetInt("AUTH_BCRYPT_COST"),
			MaxLoginAttempts:     v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:      v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:      v.GetDuration("AUTH_LOCKOUT_DURATION"),
		},
		Blacklist: Blacklist{
			CleanupSchedule: v.GetString("BLACKLIST_CLEANUP_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
