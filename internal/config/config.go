package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	DatabaseURL      string
	RedisURL         string
	NATSURL          string
	JWTSecret        string
	ChannelBase      string
	CORSOrigins      string
	ScheduleGrace    time.Duration
	ScheduleCacheTTL time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("INTERVIEW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Interview Portal API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("channel.base", "interview")
	v.SetDefault("cors.origins", "*")
	v.SetDefault("schedule.grace", "5m")
	v.SetDefault("schedule.cache_ttl", "5m")

	grace, err := time.ParseDuration(v.GetString("schedule.grace"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid schedule grace window: %w", err)
	}

	ttl, err := time.ParseDuration(v.GetString("schedule.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid schedule cache ttl: %w", err)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		DatabaseURL:      v.GetString("database.url"),
		RedisURL:         v.GetString("redis.url"),
		NATSURL:          v.GetString("nats.url"),
		JWTSecret:        v.GetString("jwt.secret"),
		ChannelBase:      v.GetString("channel.base"),
		CORSOrigins:      v.GetString("cors.origins"),
		ScheduleGrace:    grace,
		ScheduleCacheTTL: ttl,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}
