package s3store

import (
	"errors"
	"fmt"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider"
)

var (
	// ErrBucketNotFound indicates that the configured bucket does not exist
	ErrBucketNotFound = errors.New("s3 bucket not found")

	// ErrInvalidCredentials indicates that AWS credentials are invalid or missing
	ErrInvalidCredentials = errors.New("invalid or missing AWS credentials")

	// ErrCircuitOpen indicates that listings are short-circuited after repeated failures
	ErrCircuitOpen = fmt.Errorf("s3 circuit breaker open: %w", provider.ErrTransient)
)
