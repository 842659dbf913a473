package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceWebcam = "webcam"
	SourceRTSP   = "rtsp"
)

type Config struct {
	// Local record store
	BooksCSV string `env:"BOOKS_CSV" default:"books.csv"`

	// Remote catalog
	CatalogISBNURL      string        `env:"CATALOG_ISBN_URL" default:"https://www.googleapis.com/books/v1/volumes?q=isbn:{isbn}"`
	CatalogCategoryURL  string        `env:"CATALOG_CATEGORY_URL" default:"https://www.googleapis.com/books/v1/volumes?q=subject:{category}&maxResults=10"`
	CatalogAPIKey       string        `env:"CATALOG_API_KEY"`
	CatalogTimeout      time.Duration `env:"CATALOG_TIMEOUT" default:"5s"`
	CatalogRateLimit    int           `env:"CATALOG_RATE_LIMIT" default:"5"`
	CatalogMaxRetries   int           `env:"CATALOG_MAX_RETRIES" default:"0"`
	RecommendationLimit int           `env:"RECOMMENDATION_LIMIT" default:"3"`

	// Camera
	CameraSource string `env:"CAMERA_SOURCE" default:"webcam"`
	CameraIndex  string `env:"CAMERA_INDEX" default:"0"`
	RTSPURL      string `env:"RTSP_URL" default:"rtsp://127.0.0.1:8554/stream"`
	FrameWidth   int    `env:"FRAME_WIDTH" default:"1280"`
	FrameHeight  int    `env:"FRAME_HEIGHT" default:"720"`

	// Barcode decoding backend
	Decoder string `env:"DECODER" default:"zxing"`

	// Redis lookup cache, disabled when RedisURL is empty
	RedisURL      string        `env:"REDIS_URL"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `env:"CACHE_TTL" default:"24h"`

	// Local HTTP surface
	HTTPPort int `env:"HTTP_PORT" default:"8090"`

	// Development
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

// LoadConfig loads configuration from the environment, reading envFile first
// when it exists. An env file that exists but cannot be read is an error.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not read %s: %w", envFile, err)
		}
	}

	config := &Config{}

	loadEnvString(&config.BooksCSV, "BOOKS_CSV", "books.csv")

	// Remote catalog
	loadEnvString(&config.CatalogISBNURL, "CATALOG_ISBN_URL", "https://www.googleapis.com/books/v1/volumes?q=isbn:{isbn}")
	loadEnvString(&config.CatalogCategoryURL, "CATALOG_CATEGORY_URL", "https://www.googleapis.com/books/v1/volumes?q=subject:{category}&maxResults=10")
	loadEnvString(&config.CatalogAPIKey, "CATALOG_API_KEY", "")
	if err := loadEnvDuration(&config.CatalogTimeout, "CATALOG_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.CatalogRateLimit, "CATALOG_RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.CatalogMaxRetries, "CATALOG_MAX_RETRIES", 0); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.RecommendationLimit, "RECOMMENDATION_LIMIT", 3); err != nil {
		return nil, err
	}

	// Camera
	loadEnvString(&config.CameraSource, "CAMERA_SOURCE", SourceWebcam)
	loadEnvString(&config.CameraIndex, "CAMERA_INDEX", "0")
	loadEnvString(&config.RTSPURL, "RTSP_URL", "rtsp://127.0.0.1:8554/stream")
	if err := loadEnvInt(&config.FrameWidth, "FRAME_WIDTH", 1280); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.FrameHeight, "FRAME_HEIGHT", 720); err != nil {
		return nil, err
	}

	loadEnvString(&config.Decoder, "DECODER", "zxing")

	// Redis
	loadEnvString(&config.RedisURL, "REDIS_URL", "")
	loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", "")
	if err := loadEnvDuration(&config.CacheTTL, "CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8090); err != nil {
		return nil, err
	}

	loadEnvString(&config.LogLevel, "LOG_LEVEL", "info")
	loadEnvString(&config.LogFormat, "LOG_FORMAT", "text")

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.BooksCSV) == "" {
		errors = append(errors, "BOOKS_CSV must not be empty")
	}
	if !strings.Contains(c.CatalogISBNURL, "{isbn}") {
		errors = append(errors, "CATALOG_ISBN_URL must contain the {isbn} placeholder")
	}
	if !strings.Contains(c.CatalogCategoryURL, "{category}") {
		errors = append(errors, "CATALOG_CATEGORY_URL must contain the {category} placeholder")
	}
	if c.CatalogTimeout <= 0 {
		errors = append(errors, "CATALOG_TIMEOUT must be positive")
	}
	if c.CatalogRateLimit < 1 {
		errors = append(errors, "CATALOG_RATE_LIMIT must be at least 1")
	}
	if c.CatalogMaxRetries < 0 {
		errors = append(errors, "CATALOG_MAX_RETRIES must not be negative")
	}
	if c.RecommendationLimit < 0 {
		errors = append(errors, "RECOMMENDATION_LIMIT must not be negative")
	}

	if !contains([]string{SourceWebcam, SourceRTSP}, c.CameraSource) {
		errors = append(errors, "CAMERA_SOURCE must be one of: webcam, rtsp")
	}
	if c.FrameWidth < 1 || c.FrameHeight < 1 {
		errors = append(errors, "FRAME_WIDTH and FRAME_HEIGHT must be positive")
	}

	validDecoders := []string{"zxing", "zbar", "none"}
	if !contains(validDecoders, c.Decoder) {
		errors = append(errors, fmt.Sprintf("DECODER must be one of: %s", strings.Join(validDecoders, ", ")))
	}

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// CameraDevice returns what the frame source should open: the webcam index
// as an int, or the RTSP URL.
func (c *Config) CameraDevice() (interface{}, error) {
	switch c.CameraSource {
	case SourceRTSP:
		return c.RTSPURL, nil
	default:
		idx, err := strconv.Atoi(strings.TrimSpace(c.CameraIndex))
		if err != nil {
			return nil, fmt.Errorf("webcam index must be a number, got %q", c.CameraIndex)
		}
		return idx, nil
	}
}

// CacheEnabled reports whether catalog lookups go through Redis.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
