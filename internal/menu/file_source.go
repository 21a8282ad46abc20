package menu

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"kiosk/internal/model"

	"github.com/rs/zerolog"
)

// fileSource implements Source for the menu file bundled with the kiosk.
type fileSource struct {
	path   string
	logger zerolog.Logger
}

// NewFileSource creates a Source reading the envelope from a local file.
// Files ending in .gz are decompressed.
func NewFileSource(path string, logger zerolog.Logger) Source {
	return &fileSource{
		path:   path,
		logger: logger.With().Str("component", "menu-file-source").Logger(),
	}
}

// Fetch reads and decodes the bundled menu file.
func (s *fileSource) Fetch(ctx context.Context) ([]model.RawCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Info().Str("file", s.path).Msg("loading bundled menu file")

	file, err := os.Open(s.path)
	if err != nil {
		s.logger.Error().Err(err).Str("file", s.path).Msg("failed to open menu file")
		return nil, fmt.Errorf("%w: open %s: %v", model.ErrMenuFetch, s.path, err)
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(s.path, ".gz") {
		gzipReader, err := gzip.NewReader(file)
		if err != nil {
			s.logger.Error().Err(err).Str("file", s.path).Msg("failed to create gzip reader")
			return nil, fmt.Errorf("%w: gzip %s: %v", model.ErrMenuFetch, s.path, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	categories, err := DecodeEnvelope(r)
	if err != nil {
		s.logger.Error().Err(err).Str("file", s.path).Msg("bundled menu file is malformed")
		return nil, err
	}

	s.logger.Info().
		Str("file", s.path).
		Int("categories", len(categories)).
		Msg("bundled menu file loaded")

	return categories, nil
}
