package seed

import (
	"context"
	"fmt"
	"os"

	"jaggery-store/internal/model"

	"github.com/rs/zerolog"
)

// fileSource implements Source for reading seed products from a local JSON file.
type fileSource struct {
	path   string
	logger zerolog.Logger
}

// NewFileSource creates a file-based seed product source.
func NewFileSource(path string, logger zerolog.Logger) Source {
	return &fileSource{
		path:   path,
		logger: logger.With().Str("component", "seed-file-source").Logger(),
	}
}

// Products reads and parses the configured JSON file.
func (s *fileSource) Products(ctx context.Context) ([]model.Product, error) {
	s.logger.Info().Str("file", s.path).Msg("loading seed products from file")

	file, err := os.Open(s.path)
	if err != nil {
		s.logger.Error().Err(err).Str("file", s.path).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", s.path, err)
	}
	defer file.Close()

	products, err := decodeProducts(file)
	if err != nil {
		s.logger.Error().Err(err).Str("file", s.path).Msg("failed to parse seed file")
		return nil, fmt.Errorf("failed to parse seed file %s: %w", s.path, err)
	}

	s.logger.Info().
		Str("file", s.path).
		Int("products", len(products)).
		Msg("seed products loaded")

	return products, nil
}
