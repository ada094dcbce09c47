package service

import (
	"context"
	"errors"
	"fmt"

	"jaggery-store/internal/model"
	"jaggery-store/internal/repository"
	"jaggery-store/internal/seed"

	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	productRepo repository.ProductRepository
	seedSource  seed.Source
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(productRepo repository.ProductRepository, seedSource seed.Source, logger zerolog.Logger) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		seedSource:  seedSource,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

// ListAll retrieves every product in the catalog.
func (s *catalogService) ListAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("listed products")

	return products, nil
}

// Seed inserts the demo catalog products unless they already exist. A run is
// idempotent two ways: an up-front SKU existence check, and the store's
// unique SKU index, whose duplicate-key failure is treated as the
// already-seeded signal when two seed calls race.
func (s *catalogService) Seed(ctx context.Context) (*model.SeedResponse, error) {
	products, err := s.seedSource.Products(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load seed products")
		return nil, fmt.Errorf("failed to load seed products: %w", err)
	}

	if len(products) == 0 {
		return &model.SeedResponse{Inserted: 0, Message: "No seed products configured"}, nil
	}

	var skus []string
	for _, p := range products {
		if p.SKU != nil && *p.SKU != "" {
			skus = append(skus, *p.SKU)
		}
	}

	exists, err := s.productRepo.AnySKUExists(ctx, skus)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to check existing seed products")
		return nil, fmt.Errorf("failed to check existing seed products: %w", err)
	}

	if exists {
		s.logger.Info().Msg("seed products already exist, skipping")
		return &model.SeedResponse{Inserted: 0, Message: "Products already exist"}, nil
	}

	inserted := 0
	for i := range products {
		if _, err := s.productRepo.Insert(ctx, &products[i]); err != nil {
			if errors.Is(err, repository.ErrDuplicateSKU) {
				// A concurrent seed run got there first.
				s.logger.Info().
					Int("inserted", inserted).
					Msg("seed raced with a concurrent run, treating as already seeded")
				return &model.SeedResponse{Inserted: inserted, Message: "Products already exist"}, nil
			}
			s.logger.Error().Err(err).Str("title", products[i].Title).Msg("failed to insert seed product")
			return nil, fmt.Errorf("failed to insert seed product: %w", err)
		}
		inserted++
	}

	s.logger.Info().Int("inserted", inserted).Msg("seed products inserted")

	return &model.SeedResponse{Inserted: inserted}, nil
}
