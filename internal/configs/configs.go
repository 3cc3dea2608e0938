/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures the web frontend by reading operating system environment variables (optionally
seeded from a .env file), including the running environment, port, backend API address,
CORS allowed origins, the form token secret and the asset storage settings.
*/
package configs

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultAPIURL is the backend address used when API_URL is not set.
	DefaultAPIURL = "http://localhost:5000/api"

	// SessionCookieName is the fixed name of the backend-issued session cookie.
	SessionCookieName = "token"
)

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Backend Settings
	APIURL string

	// Security Settings
	AllowedOrigins []string
	FormSecret     string
	SecureCookies  bool

	// Asset Settings. S3 is optional; when the bucket is empty, asset references
	// are resolved against AssetBaseURL.
	AssetBaseURL      string
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// S3Enabled reports whether presigned asset URLs should be issued from S3.
func (c *AppConfig) S3Enabled() bool {
	return c.S3BucketName != ""
}

// LoadDotEnv loads variables from the given .env files into the process environment.
// Missing files are ignored; variables already present in the environment win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	return nil
}

// LoadConfig reads and parses the application configuration from environment variables.
// It provides default values for each configuration item and performs necessary type conversions and validation.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "3000"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// --- Backend Settings ---
	cfg.APIURL = strings.TrimRight(os.Getenv("API_URL"), "/")
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if u, err := url.Parse(cfg.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API_URL environment variable: %q", cfg.APIURL)
	}

	// --- Security Settings ---
	originsStr := os.Getenv("ALLOWED_ORIGINS")
	cfg.AllowedOrigins = []string{}
	if originsStr != "" {
		for _, origin := range strings.Split(originsStr, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	formSecret := os.Getenv("FORM_SECRET")
	if formSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("FORM_SECRET environment variable is required in %s environment for security", cfg.Environment)
		}
		formSecret = "your_default_insecure_form_secret_change_me"
	}
	cfg.FormSecret = formSecret

	if v := os.Getenv("SECURE_COOKIES"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SECURE_COOKIES environment variable: %w", err)
		}
		cfg.SecureCookies = secure
	} else {
		cfg.SecureCookies = !cfg.IsDevelopment()
	}

	// --- Asset Settings ---
	cfg.AssetBaseURL = strings.TrimRight(os.Getenv("ASSET_BASE_URL"), "/")

	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	if cfg.S3BucketName != "" {
		cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
		if cfg.S3Endpoint == "" {
			return nil, fmt.Errorf("S3_ENDPOINT environment variable is required when S3_BUCKET_NAME is set")
		}

		cfg.S3AccessKeyID = os.Getenv("S3_ACCESS_KEY_ID")
		if cfg.S3AccessKeyID == "" {
			return nil, fmt.Errorf("S3_ACCESS_KEY_ID environment variable is required for S3 authentication")
		}

		cfg.S3SecretAccessKey = os.Getenv("S3_SECRET_ACCESS_KEY")
		if cfg.S3SecretAccessKey == "" {
			return nil, fmt.Errorf("S3_SECRET_ACCESS_KEY environment variable is required for S3 authentication")
		}
	}

	return cfg, nil
}
