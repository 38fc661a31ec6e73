// Package storage issues time-limited presigned URLs for the CSV blobs
// backing guest lists. It owns no business logic: clients upload and read
// objects directly against the returned URLs.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PresignedURL is a capability-scoped URL for one object-storage key.
type PresignedURL struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// ObjectStore is the object-storage contract used by the handlers and the
// ingestion pipeline.
type ObjectStore interface {
	// IssueUploadURL returns a PUT-only URL for a new CSV object. The key
	// is generated here: a random prefix joined with the original
	// filename, globally unique.
	IssueUploadURL(ctx context.Context, filename string) (*PresignedURL, error)

	// IssueReadURL returns a GET URL for an existing object key.
	IssueReadURL(ctx context.Context, key string) (*PresignedURL, error)

	// DeleteObject removes an object.
	DeleteObject(ctx context.Context, key string) error
}

// S3Store implements ObjectStore against an S3 bucket.
type S3Store struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	ttl       time.Duration
}

func NewS3Store(ctx context.Context, region, bucket string, ttl time.Duration) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		ttl:       ttl,
	}, nil
}

func (s *S3Store) IssueUploadURL(ctx context.Context, filename string) (*PresignedURL, error) {
	key := uuid.NewString() + "-" + filename

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String("text/csv"),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload for %q: %w", key, err)
	}

	return &PresignedURL{URL: req.URL, Key: key}, nil
}

func (s *S3Store) IssueReadURL(ctx context.Context, key string) (*PresignedURL, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return nil, fmt.Errorf("failed to presign read for %q: %w", key, err)
	}

	return &PresignedURL{URL: req.URL, Key: key}, nil
}

func (s *S3Store) DeleteObject(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %q: %w", key, err)
	}
	return nil
}
