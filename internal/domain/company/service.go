package company

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic interface for company catalogs
type Service interface {
	CreateCompany(ctx context.Context, name string) (*Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)
	GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error)
	CreateGicsCompany(ctx context.Context, g *GicsCompany) error
	ListGicsCompanies(ctx context.Context) ([]GicsCompany, error)
	ListGicsCompaniesBySector(ctx context.Context, sector string) ([]GicsCompany, error)
	ListSectorCatalog(ctx context.Context) ([]SectorCatalogEntry, error)
}

type service struct {
	repo Repository
}

// NewService creates a new company service instance
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCompany(ctx context.Context, name string) (*Company, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	c := &Company{Name: name}
	if err := s.repo.CreateCompany(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListCompanies(ctx context.Context) ([]Company, error) {
	return s.repo.ListCompanies(ctx)
}

func (s *service) GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	return s.repo.GetCompanyByID(ctx, id)
}

func (s *service) CreateGicsCompany(ctx context.Context, g *GicsCompany) error {
	if g.TickerSymbol == "" || g.CompanyName == "" || g.GicsSector == "" {
		return ErrCatalogFieldsRequired
	}
	return s.repo.CreateGicsCompany(ctx, g)
}

func (s *service) ListGicsCompanies(ctx context.Context) ([]GicsCompany, error) {
	return s.repo.ListGicsCompanies(ctx)
}

func (s *service) ListGicsCompaniesBySector(ctx context.Context, sector string) ([]GicsCompany, error) {
	return s.repo.ListGicsCompaniesBySector(ctx, sector)
}

func (s *service) ListSectorCatalog(ctx context.Context) ([]SectorCatalogEntry, error) {
	return s.repo.ListSectorCatalog(ctx)
}
