package catalog

import "errors"

var (
	// ErrMalformedFilename is returned for object names that do not follow the naming convention
	ErrMalformedFilename = errors.New("malformed asset filename")

	// ErrNeverSynced is reported by Status before the first successful listing
	ErrNeverSynced = errors.New("catalog has never been synchronized")
)
