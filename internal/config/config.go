package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port         int    `envconfig:"PORT" default:"3000"`
	Environment  string `envconfig:"ENV" default:"development"`
	LogLevel     string `envconfig:"LOG_LEVEL"`
	MaxImageSize int    `envconfig:"MAX_IMAGE_SIZE" default:"10485760"`
	CORSOrigins  string `envconfig:"CORS_ORIGINS" default:"*"`

	// Detector
	DetectorType       string        `envconfig:"DETECTOR_TYPE" default:"mock"`
	MediapipeURL       string        `envconfig:"MEDIAPIPE_URL" default:"http://localhost:5006"`
	MediapipeTimeout   time.Duration `envconfig:"MEDIAPIPE_TIMEOUT" default:"15s"`
	MediapipeRetries   int           `envconfig:"MEDIAPIPE_RETRY_COUNT" default:"2"`
	DetectTimeout      time.Duration `envconfig:"DETECT_TIMEOUT" default:"20s"`
	UndertoneThreshold float64       `envconfig:"UNDERTONE_THRESHOLD" default:"10"`

	// Storage
	StorageType      string        `envconfig:"STORAGE_TYPE" default:"mock"`
	S3Bucket         string        `envconfig:"S3_BUCKET"`
	S3Prefix         string        `envconfig:"S3_PREFIX"`
	S3PublicBaseURL  string        `envconfig:"S3_PUBLIC_BASE_URL"`
	S3Endpoint       string        `envconfig:"S3_ENDPOINT"`
	S3UsePathStyle   bool          `envconfig:"S3_USE_PATH_STYLE" default:"false"`
	AWSRegion        string        `envconfig:"AWS_REGION" default:"ap-northeast-2"`
	BreakerFailures  uint32        `envconfig:"S3_BREAKER_FAILURES" default:"3"`
	BreakerTimeout   time.Duration `envconfig:"S3_BREAKER_TIMEOUT" default:"1m"`
	MockAssetBaseURL string        `envconfig:"MOCK_ASSET_BASE_URL" default:"http://localhost:3000/assets"`

	// Catalog
	CatalogTTL          time.Duration `envconfig:"CATALOG_TTL" default:"5m"`
	CatalogFetchTimeout time.Duration `envconfig:"CATALOG_FETCH_TIMEOUT" default:"10s"`
	CatalogRetryBackoff time.Duration `envconfig:"CATALOG_RETRY_BACKOFF" default:"30s"`
	CatalogWarmInterval time.Duration `envconfig:"CATALOG_WARM_INTERVAL" default:"1m"`

	// Recommendation
	RecommendationLimit int `envconfig:"RECOMMENDATION_LIMIT" default:"4"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Validate checks combinations envconfig cannot express
func (c *Config) Validate() error {
	switch c.DetectorType {
	case "mock", "mediapipe":
	default:
		return fmt.Errorf("unknown DETECTOR_TYPE %q (supported: mock, mediapipe)", c.DetectorType)
	}

	switch c.StorageType {
	case "mock":
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_TYPE=s3")
		}
	default:
		return fmt.Errorf("unknown STORAGE_TYPE %q (supported: mock, s3)", c.StorageType)
	}

	if c.LogLevel != "" {
		if _, err := ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	if c.RecommendationLimit < 1 {
		return fmt.Errorf("RECOMMENDATION_LIMIT must be positive, got %d", c.RecommendationLimit)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
