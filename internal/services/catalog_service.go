// Package services – CatalogService
//
// The catalog is immutable reference data: the API only lists it. The one
// write path is EnsureSeeded, which populates an empty table at startup so
// a fresh deployment has something to sell.
package services

import (
	"context"

	"gorm.io/gorm"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pestward/go-booking-backend/internal/domain"
)

// CatalogRepo defines the repository contract required by CatalogService.
type CatalogRepo interface {
	ListActiveServices(ctx context.Context, db *gorm.DB) ([]domain.Service, error)
	CountServices(ctx context.Context, db *gorm.DB) (int64, error)
	CreateService(ctx context.Context, db *gorm.DB, s domain.Service) (*domain.Service, error)
}

// CatalogService serves the active service catalog.
type CatalogService struct {
	DB   *gorm.DB
	Repo CatalogRepo

	titler cases.Caser
}

// NewCatalogService constructs a CatalogService with English title casing
// for display names.
func NewCatalogService(db *gorm.DB, r CatalogRepo) *CatalogService {
	return &CatalogService{DB: db, Repo: r, titler: cases.Title(language.English)}
}

// List returns the active services ordered by name, with display names
// normalized to title case regardless of how they were stored.
func (s *CatalogService) List(ctx context.Context) ([]domain.Service, error) {
	out, err := s.Repo.ListActiveServices(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Name = s.titler.String(out[i].Name)
	}
	return out, nil
}

// EnsureSeeded inserts the default catalog when the table is empty. It is
// called once at startup and is a no-op on populated databases.
func (s *CatalogService) EnsureSeeded(ctx context.Context) error {
	total, err := s.Repo.CountServices(ctx, s.DB)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}
	for _, svc := range defaultCatalog() {
		if _, err := s.Repo.CreateService(ctx, s.DB, svc); err != nil {
			return err
		}
	}
	return nil
}

// defaultCatalog is the seed data for new deployments.
func defaultCatalog() []domain.Service {
	return []domain.Service{
		{Name: "General Pest Control", Description: "Interior and exterior treatment for common household pests.", DurationMinutes: 60, PriceCents: 14900, Active: true},
		{Name: "Termite Inspection", Description: "Full-structure termite inspection with written report.", DurationMinutes: 90, PriceCents: 9900, Active: true},
		{Name: "Rodent Exclusion", Description: "Entry-point sealing and trap placement for rats and mice.", DurationMinutes: 120, PriceCents: 29900, Active: true},
		{Name: "Wasp Nest Removal", Description: "Safe removal of wasp and hornet nests.", DurationMinutes: 30, PriceCents: 12900, Active: true},
		{Name: "Bed Bug Treatment", Description: "Heat and chemical treatment for bed bug infestations.", DurationMinutes: 120, PriceCents: 49900, Active: true},
	}
}
