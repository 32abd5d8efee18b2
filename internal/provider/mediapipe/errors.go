package mediapipe

import (
	"errors"
	"fmt"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider"
)

var (
	ErrMediapipeUnavailable = fmt.Errorf("mediapipe service unavailable: %w", provider.ErrTransient)
	ErrInvalidResponse      = errors.New("invalid response from mediapipe")
	ErrIncompleteMesh       = errors.New("face mesh is missing required landmarks")
)

// StatusError is a non-2xx answer from the sidecar
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("mediapipe returned status %d: %s", e.StatusCode, e.Body)
}

// isClientError checks if the error is a 4xx client error
func isClientError(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode >= 400 && se.StatusCode < 500
}
