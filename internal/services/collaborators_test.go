package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"minimalist-backend/internal/config"
	"minimalist-backend/internal/contentgen"
	"minimalist-backend/internal/imagen"
	"minimalist-backend/internal/removebg"
	"minimalist-backend/internal/services"
	"minimalist-backend/internal/supabase"
)

func baseConfig() *config.Config {
	return &config.Config{
		ImagePlaceholderURL:      "https://picsum.photos",
		StabilityAPIBaseURL:      "https://api.stability.ai/v1/",
		StabilityEngine:          "stable-diffusion-xl-1024-v1-0",
		BackgroundPlaceholderURL: "https://example.com/transparent.png",
		RemoveBGAPIBaseURL:       "https://api.remove.bg/v1.0/",
		ContentModel:             "gemini-1.5-flash",
		GeneratorHTTPTimeout:     time.Second,
	}
}

func TestNewImageGenerator(t *testing.T) {
	cfg := baseConfig()
	assert.IsType(t, &imagen.PlaceholderClient{}, services.NewImageGenerator(cfg, zap.NewNop()))

	cfg.StabilityAPIKey = "sk"
	assert.IsType(t, &imagen.StabilityClient{}, services.NewImageGenerator(cfg, zap.NewNop()))
}

func TestNewBackgroundRemover(t *testing.T) {
	cfg := baseConfig()
	assert.IsType(t, &removebg.PlaceholderClient{}, services.NewBackgroundRemover(cfg, zap.NewNop()))

	cfg.RemoveBGAPIKey = "rb"
	assert.IsType(t, &removebg.Client{}, services.NewBackgroundRemover(cfg, zap.NewNop()))
}

func TestNewContentGenerator(t *testing.T) {
	cfg := baseConfig()
	assert.Nil(t, services.NewContentGenerator(cfg, zap.NewNop()))

	cfg.ContentAPIKey = "gem"
	assert.IsType(t, &contentgen.Client{}, services.NewContentGenerator(cfg, zap.NewNop()))
}

func TestNewAssetMirror(t *testing.T) {
	cfg := baseConfig()
	assert.Nil(t, services.NewAssetMirror(cfg, zap.NewNop()))

	cfg.SupabaseURL = "https://proj.supabase.co"
	cfg.SupabaseServiceKey = "service"
	cfg.SupabaseStorageBucket = "assets"
	assert.IsType(t, &supabase.StorageClient{}, services.NewAssetMirror(cfg, zap.NewNop()))
}
