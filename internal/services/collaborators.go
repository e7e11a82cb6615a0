// Package services picks the collaborator implementations a deployment is
// configured for.
package services

import (
	"go.uber.org/zap"
	"minimalist-backend/internal/config"
	"minimalist-backend/internal/contentgen"
	"minimalist-backend/internal/handlers"
	"minimalist-backend/internal/imagen"
	"minimalist-backend/internal/removebg"
	"minimalist-backend/internal/supabase"
)

// NewImageGenerator uses Stability AI when an API key is set and stock
// placeholders otherwise.
func NewImageGenerator(cfg *config.Config, logger *zap.Logger) imagen.Generator {
	if cfg.StabilityAPIKey != "" {
		logger.Info("Image generation via Stability AI", zap.String("engine", cfg.StabilityEngine))
		return imagen.NewStabilityClient(cfg.StabilityAPIBaseURL, cfg.StabilityAPIKey, cfg.StabilityEngine, cfg.GeneratorHTTPTimeout)
	}
	logger.Info("Image generation via placeholder images", zap.String("url", cfg.ImagePlaceholderURL))
	return imagen.NewPlaceholderClient(cfg.ImagePlaceholderURL, cfg.GeneratorHTTPTimeout)
}

func NewBackgroundRemover(cfg *config.Config, logger *zap.Logger) removebg.Remover {
	if cfg.RemoveBGAPIKey != "" {
		logger.Info("Background removal via remove.bg")
		return removebg.NewClient(cfg.RemoveBGAPIBaseURL, cfg.RemoveBGAPIKey, cfg.GeneratorHTTPTimeout)
	}
	logger.Info("Background removal via placeholder image")
	return removebg.NewPlaceholderClient(cfg.BackgroundPlaceholderURL, cfg.GeneratorHTTPTimeout)
}

// NewContentGenerator returns nil when no content API key is configured.
func NewContentGenerator(cfg *config.Config, logger *zap.Logger) handlers.ContentGenerator {
	if cfg.ContentAPIKey == "" {
		logger.Warn("CONTENT_API_KEY not set, content generation disabled")
		return nil
	}

	client, err := contentgen.New(contentgen.Config{
		APIKey:  cfg.ContentAPIKey,
		BaseURL: cfg.ContentAPIBaseURL,
		Model:   cfg.ContentModel,
		Timeout: cfg.ContentTimeout,
	})
	if err != nil {
		logger.Warn("Content generation disabled", zap.Error(err))
		return nil
	}
	logger.Info("Content generation enabled", zap.String("model", cfg.ContentModel))
	return client
}

// NewAssetMirror returns nil unless Supabase Storage is fully configured.
func NewAssetMirror(cfg *config.Config, logger *zap.Logger) handlers.AssetMirror {
	if !cfg.StorageMirrorEnabled() {
		return nil
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket, logger)
	if err != nil {
		logger.Warn("Storage mirror disabled", zap.Error(err))
		return nil
	}
	logger.Info("Mirroring saved assets to Supabase Storage", zap.String("bucket", cfg.SupabaseStorageBucket))
	return storageClient
}
