package service

import (
	"context"

	"github.com/ikkim/catalog-console/pkg/catalog"
	"github.com/ikkim/catalog-console/pkg/logger"
)

// LookupService serves the brand and category dropdowns
type LookupService interface {
	Brands(ctx context.Context) ([]catalog.Option, error)
	Subcategories(ctx context.Context) ([]catalog.Option, error)
}

type lookupService struct {
	api CatalogAPI
}

func NewLookupService(api CatalogAPI) LookupService {
	return &lookupService{api: api}
}

func (s *lookupService) Brands(ctx context.Context) ([]catalog.Option, error) {
	brands, err := s.api.ListBrands(ctx)
	if err != nil {
		logger.Error("Failed to fetch brands", err)
		return nil, err
	}
	if brands == nil {
		brands = []catalog.Option{}
	}
	return brands, nil
}

func (s *lookupService) Subcategories(ctx context.Context) ([]catalog.Option, error) {
	subs, err := s.api.ListSubcategories(ctx)
	if err != nil {
		logger.Error("Failed to fetch subcategories", err)
		return nil, err
	}
	if subs == nil {
		subs = []catalog.Option{}
	}
	return subs, nil
}
