package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BenAji/agora/internal/domain/company"
)

// CompanyHandler handles HTTP requests for company catalogs
type CompanyHandler struct {
	service company.Service
}

// NewCompanyHandler creates a new company handler instance
func NewCompanyHandler(service company.Service) *CompanyHandler {
	return &CompanyHandler{service: service}
}

type createCompanyRequest struct {
	Name string `json:"name" binding:"required"`
}

type createGicsCompanyRequest struct {
	TickerSymbol    string `json:"ticker_symbol" binding:"required"`
	CompanyName     string `json:"company_name" binding:"required"`
	GicsSector      string `json:"gics_sector" binding:"required"`
	GicsSubCategory string `json:"gics_sub_category"`
}

// CreateCompany godoc
// @Summary Register a member company
// @Description Add a member firm to the catalog. IR admin only.
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param company body createCompanyRequest true "Company information"
// @Success 201 {object} company.Company
// @Failure 400 {object} map[string]string
// @Router /api/companies [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.CreateCompany(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"company": created})
}

// CreateGicsCompany godoc
// @Summary Add a company to the GICS catalog
// @Description Register a public company with its GICS classification. IR admin only.
// @Tags companies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param company body createGicsCompanyRequest true "GICS company information"
// @Success 201 {object} company.GicsCompany
// @Failure 400 {object} map[string]string
// @Router /api/companies/gics [post]
func (h *CompanyHandler) CreateGicsCompany(c *gin.Context) {
	var req createGicsCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	g := &company.GicsCompany{
		TickerSymbol:    req.TickerSymbol,
		CompanyName:     req.CompanyName,
		GicsSector:      req.GicsSector,
		GicsSubCategory: req.GicsSubCategory,
	}
	if err := h.service.CreateGicsCompany(c.Request.Context(), g); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"company": g})
}

// ListCompanies godoc
// @Summary List companies
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Success 200 {array} company.Company
// @Router /api/companies [get]
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.service.ListCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": companies, "total": len(companies)})
}

// GetCompany godoc
// @Summary Get a company by ID
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID" format(uuid)
// @Success 200 {object} company.Company
// @Failure 404 {object} map[string]string
// @Router /api/companies/{id} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}

	comp, err := h.service.GetCompanyByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": comp})
}

// ListGicsCompanies godoc
// @Summary List GICS-classified companies
// @Description The full ticker catalog, ordered by company name. These form the calendar grid rows.
// @Tags companies
// @Produce json
// @Security BearerAuth
// @Param sector query string false "Restrict to one GICS sector"
// @Success 200 {array} company.GicsCompany
// @Router /api/companies/gics [get]
func (h *CompanyHandler) ListGicsCompanies(c *gin.Context) {
	var (
		companies []company.GicsCompany
		err       error
	)
	if sector := c.Query("sector"); sector != "" {
		companies, err = h.service.ListGicsCompaniesBySector(c.Request.Context(), sector)
	} else {
		companies, err = h.service.ListGicsCompanies(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": companies, "total": len(companies)})
}
