package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/community-news-api/internal/config"
	"github.com/community-news-api/internal/models"
)

// objectAPI is the part of *s3.Client the store uses
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3ImageStore keeps article images in an S3-compatible bucket
type S3ImageStore struct {
	client       objectAPI
	bucket       string
	publicBase   string
	cacheControl string
	log          zerolog.Logger
}

// NewS3ImageStore builds a client from static credentials. A custom
// endpoint (Supabase storage, MinIO) is used when configured.
func NewS3ImageStore(ctx context.Context, cfg *config.StorageConfig, log zerolog.Logger) (*S3ImageStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	publicBase := cfg.PublicURL
	if publicBase == "" {
		publicBase = cfg.Endpoint
	}

	return newS3ImageStore(client, cfg.Bucket, publicBase, cfg.CacheControl, log), nil
}

func newS3ImageStore(client objectAPI, bucket, publicBase, cacheControl string, log zerolog.Logger) *S3ImageStore {
	return &S3ImageStore{
		client:       client,
		bucket:       bucket,
		publicBase:   publicBase,
		cacheControl: cacheControlHeader(cacheControl),
		log:          log.With().Str("component", "storage").Str("bucket", bucket).Logger(),
	}
}

// Upload writes the object with If-None-Match so an existing key fails
func (s *S3ImageStore) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		IfNoneMatch:   aws.String("*"),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if s.cacheControl != "" {
		input.CacheControl = aws.String(s.cacheControl)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("Image upload failed")
		return "", &models.UploadError{Key: key, Err: err}
	}

	url := PublicURL(s.publicBase, s.bucket, key)
	s.log.Info().Str("key", key).Int("bytes", len(body)).Msg("Image uploaded")
	return url, nil
}

// Delete removes an object, used to clean up after a failed insert
func (s *S3ImageStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return &models.UploadError{Key: key, Err: err}
	}
	s.log.Info().Str("key", key).Msg("Image removed")
	return nil
}
