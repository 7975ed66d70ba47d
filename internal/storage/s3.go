package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// S3Config carries bucket coordinates and credentials.
type S3Config struct {
	Bucket        string
	Region        string
	AccessKey     string
	SecretKey     string
	Endpoint      string // optional S3-compatible endpoint (MinIO etc.)
	PublicBaseURL string // optional override for public object URLs
}

// S3Uploader uploads objects to an S3 bucket.
type S3Uploader struct {
	client *s3.Client
	cfg    S3Config
	logger zerolog.Logger
}

// NewS3Uploader builds an uploader from static credentials.
func NewS3Uploader(ctx context.Context, cfg S3Config, logger zerolog.Logger) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{
		client: client,
		cfg:    cfg,
		logger: logger.With().Str("component", "storage").Logger(),
	}, nil
}

// Upload puts the object into the bucket and returns a public URL for it.
func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	publicURL := u.publicURL(key)

	u.logger.Info().
		Str("bucket", u.cfg.Bucket).
		Str("key", key).
		Msg("object uploaded")
	return publicURL, nil
}

func (u *S3Uploader) publicURL(key string) string {
	escaped := url.PathEscape(key)
	if u.cfg.PublicBaseURL != "" {
		return strings.TrimRight(u.cfg.PublicBaseURL, "/") + "/" + escaped
	}
	if u.cfg.Endpoint != "" {
		return strings.TrimRight(u.cfg.Endpoint, "/") + "/" + u.cfg.Bucket + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.cfg.Bucket, u.cfg.Region, escaped)
}
