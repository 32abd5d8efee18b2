package s3store

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds configuration for the S3 asset lister
type Config struct {
	// Region is the AWS region of the bucket (e.g., "ap-northeast-2")
	Region string

	// Bucket holds the hairstyle images
	Bucket string

	// Endpoint overrides the S3 endpoint for compatible stores (MinIO, R2)
	Endpoint string

	// UsePathStyle addresses the bucket as {endpoint}/{bucket} instead of a subdomain
	UsePathStyle bool

	// PublicBaseURL is the CDN or website origin serving the objects.
	// When empty the bucket URL is used.
	PublicBaseURL string

	// PageSize is the number of keys requested per ListObjectsV2 call
	PageSize int32

	// BreakerTimeout is how long the circuit stays open before probing again
	BreakerTimeout time.Duration

	// BreakerFailures is the number of consecutive failures that opens the circuit
	BreakerFailures uint32
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		Region:          "ap-northeast-2",
		PageSize:        1000,
		BreakerTimeout:  time.Minute,
		BreakerFailures: 3,
	}
}

// ObjectURL returns the public URL of key. Every path segment is escaped so
// Korean object names survive as valid URLs.
func (c Config) ObjectURL(key string) string {
	return c.baseURL() + "/" + escapeKey(key)
}

func (c Config) baseURL() string {
	switch {
	case c.PublicBaseURL != "":
		return strings.TrimRight(c.PublicBaseURL, "/")
	case c.Endpoint != "" && c.UsePathStyle:
		return fmt.Sprintf("%s/%s", strings.TrimRight(c.Endpoint, "/"), c.Bucket)
	case c.Endpoint != "":
		u, err := url.Parse(c.Endpoint)
		if err != nil || u.Host == "" {
			return fmt.Sprintf("%s/%s", strings.TrimRight(c.Endpoint, "/"), c.Bucket)
		}
		return fmt.Sprintf("%s://%s.%s", u.Scheme, c.Bucket, u.Host)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", c.Bucket, c.Region)
	}
}

func escapeKey(key string) string {
	segments := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
