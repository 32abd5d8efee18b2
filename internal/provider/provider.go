package provider

import (
	"context"
	"errors"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/imaging"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/landmark"
)

// ErrTransient marks a storage or detector failure that may succeed on retry
var ErrTransient = errors.New("transient provider error")

// LandmarkDetector locates the face landmarks of a decoded photo
type LandmarkDetector interface {
	// DetectLandmarks returns the landmark set in the frame's pixel space.
	// It returns landmark.ErrDetectionMissing when no usable face is found.
	DetectLandmarks(ctx context.Context, frame *imaging.Frame) (*landmark.Detection, error)

	// Name identifies the detector in logs and status output
	Name() string
}

// Pinger is implemented by detectors backed by a remote service
type Pinger interface {
	Ping(ctx context.Context) error
}

// ObjectLister enumerates the hairstyle assets held by an object store
type ObjectLister interface {
	// ListObjects returns every object under prefix. Failures that should be
	// retried later wrap ErrTransient.
	ListObjects(ctx context.Context, prefix string) ([]Object, error)

	// Name identifies the storage backend in logs and status output
	Name() string
}

// Object is one listed asset
type Object struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
