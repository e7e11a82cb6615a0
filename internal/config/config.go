package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port               string `env:"PORT" env-default:"8080"`
	Environment        string `env:"ENVIRONMENT" env-default:"development"`
	BaseURL            string `env:"BASE_URL" env-default:"http://localhost:8080"`
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
	MaxUploadSize      int64  `env:"MAX_UPLOAD_SIZE" env-default:"10485760"`

	// Database
	DatabaseURL       string        `env:"DATABASE_URL"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"30m"`

	// Identity provider
	AuthJWTSecret string `env:"AUTH_JWT_SECRET"`

	// Logging
	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
	LogEncoding string `env:"LOG_ENCODING" env-default:"json"`

	// Image generation
	ImagePlaceholderURL  string        `env:"IMAGE_PLACEHOLDER_URL" env-default:"https://picsum.photos"`
	StabilityAPIKey      string        `env:"STABILITY_API_KEY"`
	StabilityAPIBaseURL  string        `env:"STABILITY_API_BASE_URL" env-default:"https://api.stability.ai/v1/"`
	StabilityEngine      string        `env:"STABILITY_ENGINE" env-default:"stable-diffusion-xl-1024-v1-0"`
	GeneratorHTTPTimeout time.Duration `env:"GENERATOR_HTTP_TIMEOUT" env-default:"60s"`

	// Background removal
	BackgroundPlaceholderURL string `env:"BACKGROUND_PLACEHOLDER_URL" env-default:"https://upload.wikimedia.org/wikipedia/commons/thumb/8/89/HD_transparent_picture.png/1200px-HD_transparent_picture.png"`
	RemoveBGAPIKey           string `env:"REMOVE_BG_API_KEY"`
	RemoveBGAPIBaseURL       string `env:"REMOVE_BG_API_BASE_URL" env-default:"https://api.remove.bg/v1.0/"`

	// Content generation
	ContentAPIKey     string        `env:"CONTENT_API_KEY"`
	ContentAPIBaseURL string        `env:"CONTENT_API_BASE_URL" env-default:"https://generativelanguage.googleapis.com/v1beta/openai"`
	ContentModel      string        `env:"CONTENT_MODEL" env-default:"gemini-1.5-flash"`
	ContentTimeout    time.Duration `env:"CONTENT_TIMEOUT" env-default:"60s"`

	// Supabase Storage mirror
	SupabaseURL           string `env:"SUPABASE_URL"`
	SupabaseServiceKey    string `env:"SUPABASE_SERVICE_KEY"`
	SupabaseStorageBucket string `env:"SUPABASE_STORAGE_BUCKET"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.AuthJWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive, got %d", c.MaxUploadSize)
	}
	return nil
}

// StorageMirrorEnabled reports whether saved assets should also be uploaded
// to Supabase Storage.
func (c *Config) StorageMirrorEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseServiceKey != "" && c.SupabaseStorageBucket != ""
}

func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
