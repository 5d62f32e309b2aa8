package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/heart0018/OriginalProduct/internal/geo"
	"github.com/heart0018/OriginalProduct/internal/ratelimiter"
	"github.com/heart0018/OriginalProduct/internal/region"
)

// Tokyo Tower. Used for distance_km when the caller sends no location.
var defaultLocation = geo.Point{Lat: 35.65856, Lng: 139.745461}

type config struct {
	addr        string
	env         string
	apiURL      string
	db          dbConfig
	redis       redisConfig
	auth        authConfig
	session     sessionConfig
	cors        corsConfig
	rateLimiter ratelimiter.Config
	fallback    geo.Point
	logLevel    string
}

type dbConfig struct {
	addr         string
	maxOpenConns int
	maxIdleTime  string
}

type redisConfig struct {
	addr     string
	password string
	db       int
}

type authConfig struct {
	basic           basicConfig
	googleClientIDs []string
}

type basicConfig struct {
	user string
	pass string
}

type sessionConfig struct {
	secret       string
	ttl          time.Duration
	iss          string
	cookieDomain string
	crossSite    bool
}

type corsConfig struct {
	allowedOrigins []string
}

func (c config) isProduction() bool { return c.env == "production" }

// loadConfig reads the environment once. Bad numeric values are reported
// instead of silently replaced, except for the rate limiter which keeps the
// old lenient behavior.
func loadConfig() (config, error) {
	var err error
	cfg := config{
		addr:   getEnv("ADDR", ":3000"),
		env:    getEnv("ENV", "development"),
		apiURL: getEnv("EXTERNAL_URL", "localhost:3000"),
		db: dbConfig{
			addr:        os.Getenv("DB_ADDR"),
			maxIdleTime: getEnv("DB_MAX_IDLE_TIME", "15m"),
		},
		redis: redisConfig{
			addr:     os.Getenv("REDIS_ADDR"),
			password: os.Getenv("REDIS_PASSWORD"),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
			googleClientIDs: region.ParseList(os.Getenv("GOOGLE_CLIENT_ID")),
		},
		session: sessionConfig{
			secret:       os.Getenv("SESSION_SECRET"),
			iss:          "swipe_app",
			cookieDomain: os.Getenv("COOKIE_DOMAIN"),
		},
		cors: corsConfig{
			allowedOrigins: region.ParseList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		rateLimiter: loadRateLimiterConfig(),
		logLevel:    getEnv("LOG_LEVEL", "info"),
	}

	if cfg.db.maxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", 30); err != nil {
		return config{}, err
	}
	if cfg.redis.db, err = getEnvInt("REDIS_DB", 0); err != nil {
		return config{}, err
	}
	if cfg.session.ttl, err = getEnvDuration("SESSION_TTL", 14*24*time.Hour); err != nil {
		return config{}, err
	}
	if cfg.session.crossSite, err = getEnvBool("CROSS_SITE_COOKIE", false); err != nil {
		return config{}, err
	}
	if cfg.fallback.Lat, err = getEnvFloat("DEFAULT_LAT", defaultLocation.Lat); err != nil {
		return config{}, err
	}
	if cfg.fallback.Lng, err = getEnvFloat("DEFAULT_LNG", defaultLocation.Lng); err != nil {
		return config{}, err
	}

	return cfg, nil
}

// loadRateLimiterConfig retrieves rate limiter settings from environment variables
func loadRateLimiterConfig() ratelimiter.Config {
	cfg := ratelimiter.Config{
		RequestsPerTimeFrame: 200,
		TimeFrame:            5 * time.Second,
		Enabled:              false,
	}
	if n, err := strconv.Atoi(os.Getenv("RATELIMITER_REQUESTS_COUNT")); err == nil && n > 0 {
		cfg.RequestsPerTimeFrame = n
	}
	if b, err := strconv.ParseBool(os.Getenv("RATE_LIMITER_ENABLED")); err == nil {
		cfg.Enabled = b
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return b, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return d, nil
}
