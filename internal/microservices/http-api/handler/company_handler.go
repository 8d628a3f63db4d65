package handler

import (
	"net/http"

	"villahub/internal/microservices/http-api/dto"
	"villahub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyService service.CompanyService
}

func NewCompanyHandler(companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

func (h *CompanyHandler) RegisterRoutes(router *gin.RouterGroup) {
	companies := router.Group("/companies")
	{
		companies.GET("", h.List)
		companies.GET("/:id", h.Get)
		companies.POST("", h.Create)
		companies.PUT("/:id", h.Update)
		companies.DELETE("/:id", h.Delete)
	}
}

func (h *CompanyHandler) List(c *gin.Context) {
	companies, err := h.companyService.ListCompanies(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, companies)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	company, err := h.companyService.GetCompany(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req dto.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	company := req.ToModel(0)
	synced, err := h.companyService.CreateCompany(c.Request.Context(), company)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMutation(c, http.StatusCreated, company, synced)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	company := req.ToModel(id)
	synced, err := h.companyService.UpdateCompany(c.Request.Context(), company)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMutation(c, http.StatusOK, company, synced)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	synced, err := h.companyService.DeleteCompany(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMutation(c, http.StatusOK, nil, synced)
}
