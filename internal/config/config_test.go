package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"minimalist-backend/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/minimalist?sslmode=disable")
	t.Setenv("AUTH_JWT_SECRET", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadSize)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, "gemini-1.5-flash", cfg.ContentModel)
	assert.False(t, cfg.StorageMirrorEnabled())
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("AUTH_JWT_SECRET", "secret")

	_, err := config.Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
}

func TestValidate_MissingSecret(t *testing.T) {
	cfg := &config.Config{DatabaseURL: "postgres://db", MaxUploadSize: 1}

	err := cfg.Validate()
	assert.EqualError(t, err, "AUTH_JWT_SECRET is required")
}

func TestStorageMirrorEnabled(t *testing.T) {
	cfg := &config.Config{
		SupabaseURL:           "https://project.supabase.co",
		SupabaseServiceKey:    "key",
		SupabaseStorageBucket: "assets",
	}
	assert.True(t, cfg.StorageMirrorEnabled())

	cfg.SupabaseStorageBucket = ""
	assert.False(t, cfg.StorageMirrorEnabled())
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &config.Config{CORSAllowedOrigins: "http://localhost:3000, https://app.example.com,,"}

	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.AllowedOrigins())
}
