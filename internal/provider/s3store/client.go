package s3store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/provider"
)

const (
	errCodeAccessDenied       = "AccessDenied"
	errCodeInvalidAccessKeyID = "InvalidAccessKeyId"
	errCodeSignatureMismatch  = "SignatureDoesNotMatch"
	errCodeNoSuchBucket       = "NoSuchBucket"
)

// Client wraps the S3 ListObjectsV2 API
type Client struct {
	api    s3.ListObjectsV2APIClient
	config Config
}

// NewClient creates a new S3 client with the provided configuration
// It uses the AWS default credential chain to authenticate
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewClientWithAPI(api, cfg), nil
}

// NewClientWithAPI creates a client over an existing API implementation (useful for testing)
func NewClientWithAPI(api s3.ListObjectsV2APIClient, cfg Config) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultConfig().PageSize
	}
	return &Client{api: api, config: cfg}
}

// ListObjects returns every object under prefix with its public URL.
// Folder placeholders are skipped.
func (c *Client) ListObjects(ctx context.Context, prefix string) ([]provider.Object, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.config.Bucket),
		MaxKeys: aws.Int32(c.config.PageSize),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	var objects []provider.Object
	paginator := s3.NewListObjectsV2Paginator(c.api, input)

	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, c.mapError(err)
		}

		for _, obj := range output.Contents {
			key := aws.ToString(obj.Key)
			if key == "" || strings.HasSuffix(key, "/") {
				continue
			}
			objects = append(objects, provider.Object{
				Name: key,
				URL:  c.config.ObjectURL(key),
			})
		}
	}

	return objects, nil
}

// mapError classifies listing failures. Missing buckets and bad credentials
// are permanent; everything else may succeed later and wraps ErrTransient.
func (c *Client) mapError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case errCodeNoSuchBucket:
			return fmt.Errorf("bucket %s: %w", c.config.Bucket, ErrBucketNotFound)
		case errCodeAccessDenied, errCodeInvalidAccessKeyID, errCodeSignatureMismatch:
			return fmt.Errorf("bucket %s: %w", c.config.Bucket, ErrInvalidCredentials)
		}
	}
	return fmt.Errorf("list bucket %s: %w: %w", c.config.Bucket, provider.ErrTransient, err)
}
