package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company represents a member firm that users belong to
type Company struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:idx_company_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GicsCompany represents a public company in the GICS classification catalog.
// The calendar grid's row axis is this catalog ordered by company name.
type GicsCompany struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	TickerSymbol    string    `json:"ticker_symbol" gorm:"type:varchar(12);not null;uniqueIndex:idx_gics_ticker"`
	CompanyName     string    `json:"company_name" gorm:"type:varchar(255);not null;index:idx_gics_name"`
	GicsSector      string    `json:"gics_sector" gorm:"type:varchar(100);not null;index:idx_gics_sector"`
	GicsSubCategory string    `json:"gics_sub_category,omitempty" gorm:"type:varchar(100)"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SectorCatalogEntry is one sector with its distinct sub-categories
type SectorCatalogEntry struct {
	Sector        string   `json:"sector"`
	SubCategories []string `json:"sub_categories"`
}

func (Company) TableName() string     { return "companies" }
func (GicsCompany) TableName() string { return "gics_companies" }

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (g *GicsCompany) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Common errors
var (
	ErrNotFound              = &Error{message: "company not found"}
	ErrNameRequired          = &Error{message: "company name is required"}
	ErrCatalogFieldsRequired = &Error{message: "ticker, company name and sector are required"}
)

// Error type
type Error struct {
	message string
}

func (e *Error) Error() string {
	return e.message
}
