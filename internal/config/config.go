package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultJWTAccessTTL  = "30m"
	defaultJWTRefreshTTL = "168h"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultOTPLength     = "6"
	defaultOTPTTL        = "5m"
	defaultUploadDir     = "./uploads"
	defaultStaticBase    = "/static/uploads"
	defaultListenAddr    = ":8080"
)

type Config struct {
	AppEnv      string
	ListenAddr  string
	DatabaseURL string

	JWTSecret     string
	JWTAccessTTL  time.Duration
	JWTRefreshTTL time.Duration

	OTPLength int
	OTPTTL    time.Duration

	EskizEmail    string
	EskizPassword string

	OneIDBaseURL      string
	OneIDClientID     string
	OneIDClientSecret string
	OneIDRedirectURI  string
	OneIDScope        string

	EimzoAuthURL string
	EimzoRealIP  string
	EimzoHost    string

	UploadDir  string
	StaticBase string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "qavat.db"
	}

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.JWTRefreshTTL, err = parseDurationEnv("JWT_REFRESH_TTL", defaultJWTRefreshTTL)
	if err != nil {
		return nil, err
	}

	cfg.OTPLength, err = parseIntEnv("OTP_LENGTH", defaultOTPLength)
	if err != nil {
		return nil, err
	}
	cfg.OTPTTL, err = parseDurationEnv("OTP_EXPIRE", defaultOTPTTL)
	if err != nil {
		return nil, err
	}

	cfg.EskizEmail = strings.TrimSpace(os.Getenv("ESKIZ_EMAIL"))
	cfg.EskizPassword = strings.TrimSpace(os.Getenv("ESKIZ_PASSWORD"))

	cfg.OneIDBaseURL = getEnv("ONE_ID_BASE_URL", "https://sso.egov.uz/sso/oauth")
	cfg.OneIDClientID = strings.TrimSpace(os.Getenv("ONE_ID_CLIENT_ID"))
	cfg.OneIDClientSecret = strings.TrimSpace(os.Getenv("ONE_ID_CLIENT_SECRET"))
	cfg.OneIDRedirectURI = strings.TrimSpace(os.Getenv("ONE_ID_REDIRECT_URI"))
	cfg.OneIDScope = getEnv("ONE_ID_SCOPE", "myportal")

	cfg.EimzoAuthURL = getEnv("EIMZO_AUTH_URL", "http://127.0.0.1:8080/backend/auth")
	cfg.EimzoRealIP = strings.TrimSpace(os.Getenv("EIMZO_REAL_IP"))
	cfg.EimzoHost = strings.TrimSpace(os.Getenv("EIMZO_HOST"))

	cfg.UploadDir = getEnv("UPLOAD_DIR", defaultUploadDir)
	cfg.StaticBase = getEnv("STATIC_URL_BASE", defaultStaticBase)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.JWTRefreshTTL <= 0 {
		return fmt.Errorf("JWT_REFRESH_TTL must be > 0")
	}
	if cfg.OTPLength < 4 || cfg.OTPLength > 8 {
		return fmt.Errorf("OTP_LENGTH must be between 4 and 8")
	}
	if cfg.OTPTTL <= 0 {
		return fmt.Errorf("OTP_EXPIRE must be > 0")
	}
	if isProdLike(cfg.AppEnv) {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if !strings.HasPrefix(cfg.DatabaseURL, "postgres") {
			return fmt.Errorf("in prod/release DATABASE_URL must point to PostgreSQL")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
