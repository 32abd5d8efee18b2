package face

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/config"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider/mediapipe"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider/mock"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider/s3store"
)

// DetectorType defines supported landmark detector types
type DetectorType string

const (
	// DetectorTypeMock places a synthetic average face (local, for dev/test)
	DetectorTypeMock DetectorType = "mock"
	// DetectorTypeMediapipe calls the face-mesh sidecar
	DetectorTypeMediapipe DetectorType = "mediapipe"
)

// StorageType defines supported catalog storage types
type StorageType string

const (
	// StorageTypeMock serves a built-in sample catalog
	StorageTypeMock StorageType = "mock"
	// StorageTypeS3 lists an S3 (or S3 compatible) bucket
	StorageTypeS3 StorageType = "s3"
)

// NewLandmarkDetector creates a LandmarkDetector based on configuration
//
// Environment variables:
//   - DETECTOR_TYPE: "mock" or "mediapipe" (default: "mock")
//   - MEDIAPIPE_URL: face-mesh sidecar URL (default: "http://localhost:5006")
//   - MEDIAPIPE_TIMEOUT, MEDIAPIPE_RETRY_COUNT
func NewLandmarkDetector(cfg *config.Config) (provider.LandmarkDetector, error) {
	switch DetectorType(cfg.DetectorType) {
	case DetectorTypeMediapipe:
		return createMediapipeDetector(cfg), nil

	case DetectorTypeMock, "":
		return mock.NewDetector(), nil

	default:
		return nil, fmt.Errorf("unknown detector type: %s (supported: %s, %s)",
			cfg.DetectorType, DetectorTypeMock, DetectorTypeMediapipe)
	}
}

// NewObjectLister creates an ObjectLister based on configuration
//
// Environment variables:
//   - STORAGE_TYPE: "mock" or "s3" (default: "mock")
//   - S3_BUCKET, S3_PREFIX, S3_PUBLIC_BASE_URL, S3_ENDPOINT, AWS_REGION
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY (via AWS SDK credential chain)
func NewObjectLister(ctx context.Context, cfg *config.Config, logger *slog.Logger) (provider.ObjectLister, error) {
	switch StorageType(cfg.StorageType) {
	case StorageTypeS3:
		return createS3Lister(ctx, cfg, logger)

	case StorageTypeMock, "":
		return mock.NewLister(mock.SampleObjects(cfg.MockAssetBaseURL, cfg.S3Prefix)), nil

	default:
		return nil, fmt.Errorf("unknown storage type: %s (supported: %s, %s)",
			cfg.StorageType, StorageTypeMock, StorageTypeS3)
	}
}

// createMediapipeDetector creates a face-mesh detector instance
func createMediapipeDetector(cfg *config.Config) provider.LandmarkDetector {
	mpConfig := mediapipe.DefaultConfig()
	if cfg.MediapipeURL != "" {
		mpConfig.BaseURL = cfg.MediapipeURL
	}
	if cfg.MediapipeTimeout > 0 {
		mpConfig.Timeout = cfg.MediapipeTimeout
	}
	if cfg.MediapipeRetries >= 0 {
		mpConfig.RetryCount = cfg.MediapipeRetries
	}

	return mediapipe.NewProvider(mpConfig)
}

// createS3Lister creates an S3 lister instance
func createS3Lister(ctx context.Context, cfg *config.Config, logger *slog.Logger) (provider.ObjectLister, error) {
	s3Config := s3store.Config{
		Region:          cfg.AWSRegion,
		Bucket:          cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
		UsePathStyle:    cfg.S3UsePathStyle,
		PublicBaseURL:   cfg.S3PublicBaseURL,
		BreakerFailures: cfg.BreakerFailures,
		BreakerTimeout:  cfg.BreakerTimeout,
	}

	lister, err := s3store.NewLister(ctx, s3Config, logger)
	if err != nil {
		return nil, fmt.Errorf("create s3 lister for bucket %s: %w", cfg.S3Bucket, err)
	}

	return lister, nil
}
