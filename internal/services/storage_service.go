package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/example/tavola/internal/config"
)

// LogoStorage stores uploaded image blobs and returns their public URL.
type LogoStorage interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// S3Storage uploads to an S3-compatible bucket.
type S3Storage struct {
	client     *s3.S3
	bucket     string
	publicBase string
}

// NewS3Storage builds an S3 session from config.
func NewS3Storage(cfg *config.Config) (*S3Storage, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.S3Region),
		Credentials: credentials.NewStaticCredentials(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Endpoint:    aws.String(cfg.S3Endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 session: %w", err)
	}

	publicBase := cfg.S3PublicBase
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.amazonaws.com", cfg.S3Bucket)
	}

	return &S3Storage{
		client:     s3.New(sess),
		bucket:     cfg.S3Bucket,
		publicBase: publicBase,
	}, nil
}

// Upload writes data under a unique key derived from filename and returns
// the public URL for the stored object.
func (s *S3Storage) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("partners/%d%s", time.Now().UnixNano(), filepath.Ext(filename))

	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.publicBase, key), nil
}
