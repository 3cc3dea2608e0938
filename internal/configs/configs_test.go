package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"ENVIRONMENT", "PORT", "API_URL", "ALLOWED_ORIGINS", "FORM_SECRET", "SECURE_COOKIES",
		"ASSET_BASE_URL", "S3_BUCKET_NAME", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.NotEmpty(t, cfg.FormSecret)
	assert.False(t, cfg.SecureCookies)
	assert.False(t, cfg.S3Enabled())
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("API_URL", "https://api.example.com/v1/")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "https://api.example.com/v1", cfg.APIURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfig_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"bad port":            {"PORT": "abc"},
		"privileged port":     {"PORT": "80"},
		"bad api url":         {"API_URL": "not a url"},
		"prod without secret": {"ENVIRONMENT": "production"},
		"s3 without endpoint": {"S3_BUCKET_NAME": "assets"},
		"bad secure cookies":  {"SECURE_COOKIES": "maybe"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_ProductionDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("FORM_SECRET", "s3cret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.SecureCookies)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("API_URL")

	dir := t.TempDir()
	p := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(p, []byte("API_URL=http://backend.local:5000/api\n"), 0o600))

	require.NoError(t, LoadDotEnv(p, filepath.Join(dir, "missing.env")))
	t.Cleanup(func() { os.Unsetenv("API_URL") })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://backend.local:5000/api", cfg.APIURL)
}
