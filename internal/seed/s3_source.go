package seed

import (
	"context"
	"fmt"

	"jaggery-store/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Source implements Source for reading seed products from an S3 object.
type s3Source struct {
	client *s3.Client
	bucket string
	key    string
	logger zerolog.Logger
}

// NewS3Source creates an S3-backed seed product source.
func NewS3Source(ctx context.Context, bucket, region, key string, logger zerolog.Logger) (Source, error) {
	logger = logger.With().Str("component", "seed-s3-source").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("key", key).
		Msg("S3 seed source initialised")

	return &s3Source{
		client: client,
		bucket: bucket,
		key:    key,
		logger: logger,
	}, nil
}

// Products fetches and parses the configured S3 object.
func (s *s3Source) Products(ctx context.Context) ([]model.Product, error) {
	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", s.key).
		Msg("loading seed products from S3")

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", s.key).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", s.bucket, s.key, err)
	}
	defer result.Body.Close()

	products, err := decodeProducts(result.Body)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", s.key).
			Msg("failed to parse S3 seed object")
		return nil, fmt.Errorf("failed to parse S3 seed object %s: %w", s.key, err)
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", s.key).
		Int("products", len(products)).
		Msg("seed products loaded")

	return products, nil
}
