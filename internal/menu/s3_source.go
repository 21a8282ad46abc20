package menu

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"strings"

	"kiosk/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// objectGetter is the subset of the S3 client used to read the menu.
type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// s3Source implements Source for a menu envelope published to S3.
type s3Source struct {
	client objectGetter
	bucket string
	key    string
	logger zerolog.Logger
}

// NewS3Source creates a Source reading the menu object from S3.
func NewS3Source(ctx context.Context, bucket, region, key string, logger zerolog.Logger) (Source, error) {
	logger = logger.With().Str("component", "menu-s3-source").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("key", key).
		Msg("S3 menu source initialised")

	return newS3Source(s3.NewFromConfig(cfg), bucket, key, logger), nil
}

func newS3Source(client objectGetter, bucket, key string, logger zerolog.Logger) *s3Source {
	return &s3Source{
		client: client,
		bucket: bucket,
		key:    key,
		logger: logger,
	}
}

// Fetch downloads and decodes the menu object. Objects stored with a .gz key
// or gzip content encoding are decompressed.
func (s *s3Source) Fetch(ctx context.Context) ([]model.RawCategory, error) {
	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", s.key).
		Msg("loading menu from S3")

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", s.key).
			Msg("failed to get menu object from S3")
		return nil, fmt.Errorf("%w: s3 bucket=%s key=%s: %v", model.ErrMenuFetch, s.bucket, s.key, err)
	}
	defer result.Body.Close()

	var r io.Reader = result.Body
	if strings.HasSuffix(s.key, ".gz") || aws.ToString(result.ContentEncoding) == "gzip" {
		gzipReader, err := gzip.NewReader(result.Body)
		if err != nil {
			s.logger.Error().Err(err).Str("key", s.key).Msg("failed to create gzip reader")
			return nil, fmt.Errorf("%w: gzip s3 object %s: %v", model.ErrMenuFetch, s.key, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	categories, err := DecodeEnvelope(r)
	if err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("S3 menu object is malformed")
		return nil, err
	}

	s.logger.Info().
		Str("bucket", s.bucket).
		Str("key", s.key).
		Int("categories", len(categories)).
		Msg("menu loaded from S3")

	return categories, nil
}

// fallbackSource tries a remote source first, then the bundled file.
type fallbackSource struct {
	primary   Source
	secondary Source
	logger    zerolog.Logger
}

// NewFallbackSource creates a Source that falls back to secondary when
// primary fails. A nil primary uses secondary only.
func NewFallbackSource(primary, secondary Source, logger zerolog.Logger) Source {
	return &fallbackSource{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With().Str("component", "menu-fallback-source").Logger(),
	}
}

// Fetch returns the primary result, or the secondary one if primary fails.
func (s *fallbackSource) Fetch(ctx context.Context) ([]model.RawCategory, error) {
	if s.primary != nil {
		categories, err := s.primary.Fetch(ctx)
		if err == nil {
			return categories, nil
		}

		s.logger.Warn().
			Err(err).
			Msg("primary menu source failed, falling back to bundled menu")
	}

	if s.secondary == nil {
		return nil, fmt.Errorf("%w: no secondary menu source", model.ErrMenuFetch)
	}

	return s.secondary.Fetch(ctx)
}
