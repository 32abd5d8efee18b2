package service

import (
	"context"
	"fmt"

	"github.com/saturnino-fabrica-de-software/hairfit/internal/catalog"
	"github.com/saturnino-fabrica-de-software/hairfit/internal/domain"
)

// CatalogController is the cache control surface of the synchronizer
type CatalogController interface {
	CatalogSource
	Refresh(ctx context.Context) (*catalog.Snapshot, error)
}

type CatalogService struct {
	catalog CatalogController
}

func NewCatalogService(c CatalogController) *CatalogService {
	return &CatalogService{catalog: c}
}

func (s *CatalogService) Status() catalog.Status {
	return s.catalog.Status()
}

// Refresh forces a listing. A failed listing keeps the previous snapshot;
// the returned status then reports degraded mode together with the error.
func (s *CatalogService) Refresh(ctx context.Context) (catalog.Status, error) {
	if _, err := s.catalog.Refresh(ctx); err != nil {
		return s.catalog.Status(), fmt.Errorf("refresh catalog: %w", err)
	}
	return s.catalog.Status(), nil
}

// Styles lists the catalog entries for a shape and an optional age band.
// The listing carries the version of the snapshot the entries were read from.
func (s *CatalogService) Styles(ctx context.Context, shape, band string) (catalog.Listing, error) {
	faceShape, err := domain.ParseFaceShape(shape)
	if err != nil {
		return catalog.Listing{}, domain.ErrInvalidFaceShape.WithError(fmt.Errorf("face shape %q", shape))
	}

	ageBand, err := domain.ParseAgeBand(band)
	if err != nil {
		return catalog.Listing{}, domain.ErrInvalidAgeBand.WithError(fmt.Errorf("age band %q", band))
	}

	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return catalog.Listing{}, fmt.Errorf("catalog snapshot: %w", err)
	}

	entries := snap.Entries(faceShape, ageBand)
	if entries == nil {
		entries = []catalog.StyleEntry{}
	}
	return catalog.Listing{Version: snap.Version, Styles: entries}, nil
}
