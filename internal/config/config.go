package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envAppEnv                = "APP_ENV"
	envStaticDir             = "STATIC_DIR"
	envEnableProfiling       = "ENABLE_PROFILING"
	envAPIBaseURL            = "API_BASE_URL"
	envAPIBaseURLLegacy      = "NEXT_PUBLIC_API_URL"
	envBackendTimeout        = "BACKEND_TIMEOUT"
	envPollInterval          = "NOTIFICATION_POLL_INTERVAL"
	envSessionIdleTTL        = "SESSION_IDLE_TTL"
	envAdminUsername         = "ADMIN_USERNAME"
	envAdminPasswordHash     = "ADMIN_PASSWORD_HASH"
	envSessionSecret         = "SESSION_SECRET"
	envDatabaseURL           = "DATABASE_URL"
	envAWSRegion             = "REGION"
	envAWSAccessKeyID        = "AWS_ACCESS_KEY_ID"
	envAWSSecretAccessKey    = "AWS_SECRET_ACCESS_KEY"
	envAssetBucket           = "ASSET_BUCKET"
	envAssetPublicBaseURL    = "ASSET_PUBLIC_BASE_URL"
	envAssetMaxWidth         = "ASSET_MAX_WIDTH"
)

const (
	defaultServerPort         = "8080"
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 10 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultAppEnv             = "development"
	defaultBackendTimeout     = 10 * time.Second
	defaultPollInterval       = 15 * time.Second
	defaultSessionIdleTTL     = 24 * time.Hour
	defaultAssetMaxWidth      = 1600
	productionEnv             = "production"
	minSessionSecretLength    = 32

	errPortRequiredFmt          = "PORT must be set"
	errBaseURLInvalidFmt        = "API_BASE_URL must be an absolute http(s) URL, got %q"
	errBackendTimeoutFmt        = "BACKEND_TIMEOUT must be positive"
	errPollIntervalFmt          = "NOTIFICATION_POLL_INTERVAL must be at least 1s"
	errSessionTTLFmt            = "SESSION_IDLE_TTL must be positive"
	errLocalLoginIncompleteFmt  = "ADMIN_USERNAME and ADMIN_PASSWORD_HASH must be set together"
	errSessionSecretLengthFmt   = "SESSION_SECRET must be at least %d characters when local login is enabled"
	errAssetBucketIncompleteFmt = "ASSET_BUCKET requires REGION, AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY"
	errInvalidConfigurationFmt  = "invalid configuration: %w"
)

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Session SessionConfig
	Auth    AuthConfig
	Audit   AuditConfig
	Assets  AssetConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Environment     string
	StaticDir       string
	Profiling       bool
}

// BackendConfig describes the REST backend. An empty BaseURL is allowed:
// every call then short-circuits with a configuration error.
type BackendConfig struct {
	BaseURL      string
	Timeout      time.Duration
	PollInterval time.Duration
}

type SessionConfig struct {
	IdleTTL      time.Duration
	SecureCookie bool
}

// AuthConfig enables the local credential exchange when Username is set.
type AuthConfig struct {
	Username     string
	PasswordHash string
	Secret       string
}

type AuditConfig struct {
	DatabaseURL string
}

type AssetConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
	MaxWidth        int
}

func Load() (*Config, error) {
	env := getEnv(envAppEnv, defaultAppEnv)

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
			Environment:     env,
			StaticDir:       getEnv(envStaticDir, ""),
			Profiling:       getBoolEnv(envEnableProfiling, false),
		},
		Backend: BackendConfig{
			BaseURL:      strings.TrimRight(getEnv(envAPIBaseURL, getEnv(envAPIBaseURLLegacy, "")), "/"),
			Timeout:      getDurationEnv(envBackendTimeout, defaultBackendTimeout),
			PollInterval: getDurationEnv(envPollInterval, defaultPollInterval),
		},
		Session: SessionConfig{
			IdleTTL:      getDurationEnv(envSessionIdleTTL, defaultSessionIdleTTL),
			SecureCookie: env == productionEnv,
		},
		Auth: AuthConfig{
			Username:     getEnv(envAdminUsername, ""),
			PasswordHash: getEnv(envAdminPasswordHash, ""),
			Secret:       getEnv(envSessionSecret, ""),
		},
		Audit: AuditConfig{
			DatabaseURL: getEnv(envDatabaseURL, ""),
		},
		Assets: AssetConfig{
			Region:          getEnv(envAWSRegion, ""),
			AccessKeyID:     getEnv(envAWSAccessKeyID, ""),
			SecretAccessKey: getEnv(envAWSSecretAccessKey, ""),
			Bucket:          getEnv(envAssetBucket, ""),
			PublicBaseURL:   strings.TrimRight(getEnv(envAssetPublicBaseURL, ""), "/"),
			MaxWidth:        getIntEnv(envAssetMaxWidth, defaultAssetMaxWidth),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	if c.Backend.BaseURL != "" {
		u, err := url.Parse(c.Backend.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf(errBaseURLInvalidFmt, c.Backend.BaseURL)
		}
	}

	if c.Backend.Timeout <= 0 {
		return fmt.Errorf(errBackendTimeoutFmt)
	}

	if c.Backend.PollInterval < time.Second {
		return fmt.Errorf(errPollIntervalFmt)
	}

	if c.Session.IdleTTL <= 0 {
		return fmt.Errorf(errSessionTTLFmt)
	}

	if (c.Auth.Username == "") != (c.Auth.PasswordHash == "") {
		return fmt.Errorf(errLocalLoginIncompleteFmt)
	}

	if c.Auth.LocalLoginEnabled() && len(c.Auth.Secret) < minSessionSecretLength {
		return fmt.Errorf(errSessionSecretLengthFmt, minSessionSecretLength)
	}

	if c.Assets.Bucket != "" && (c.Assets.Region == "" || c.Assets.AccessKeyID == "" || c.Assets.SecretAccessKey == "") {
		return fmt.Errorf(errAssetBucketIncompleteFmt)
	}

	return nil
}

// Configured reports whether a backend origin is set.
func (c *BackendConfig) Configured() bool {
	return c.BaseURL != ""
}

func (c *AuthConfig) LocalLoginEnabled() bool {
	return c.Username != "" && c.PasswordHash != ""
}

func (c *AssetConfig) S3Enabled() bool {
	return c.Bucket != ""
}

func (c *AuditConfig) Enabled() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
