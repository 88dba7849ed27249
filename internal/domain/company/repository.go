package company

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines data access for the company catalogs
type Repository interface {
	CreateCompany(ctx context.Context, c *Company) error
	GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)

	CreateGicsCompany(ctx context.Context, g *GicsCompany) error
	ListGicsCompanies(ctx context.Context) ([]GicsCompany, error)
	ListGicsCompaniesBySector(ctx context.Context, sector string) ([]GicsCompany, error)
	ListSectorCatalog(ctx context.Context) ([]SectorCatalogEntry, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new company repository instance
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCompany(ctx context.Context, c *Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListCompanies(ctx context.Context) ([]Company, error) {
	var companies []Company
	err := r.db.WithContext(ctx).Order("name ASC").Find(&companies).Error
	return companies, err
}

func (r *repository) CreateGicsCompany(ctx context.Context, g *GicsCompany) error {
	return r.db.WithContext(ctx).Create(g).Error
}

// ListGicsCompanies returns the full catalog ordered by company name,
// which fixes the calendar grid's row order.
func (r *repository) ListGicsCompanies(ctx context.Context) ([]GicsCompany, error) {
	var companies []GicsCompany
	err := r.db.WithContext(ctx).Order("company_name ASC").Find(&companies).Error
	return companies, err
}

func (r *repository) ListGicsCompaniesBySector(ctx context.Context, sector string) ([]GicsCompany, error) {
	var companies []GicsCompany
	err := r.db.WithContext(ctx).
		Where("gics_sector = ?", sector).
		Order("company_name ASC").
		Find(&companies).Error
	return companies, err
}

func (r *repository) ListSectorCatalog(ctx context.Context) ([]SectorCatalogEntry, error) {
	type row struct {
		GicsSector      string
		GicsSubCategory string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&GicsCompany{}).
		Distinct("gics_sector", "gics_sub_category").
		Order("gics_sector ASC, gics_sub_category ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	var catalog []SectorCatalogEntry
	for _, rw := range rows {
		if len(catalog) == 0 || catalog[len(catalog)-1].Sector != rw.GicsSector {
			catalog = append(catalog, SectorCatalogEntry{Sector: rw.GicsSector})
		}
		if rw.GicsSubCategory != "" {
			last := &catalog[len(catalog)-1]
			last.SubCategories = append(last.SubCategories, rw.GicsSubCategory)
		}
	}
	return catalog, nil
}
