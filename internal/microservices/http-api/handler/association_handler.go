package handler

import (
	"net/http"

	"villahub/internal/microservices/http-api/dto"
	"villahub/internal/microservices/http-api/models"
	"villahub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AssociationHandler struct {
	associationService service.AssociationService
}

func NewAssociationHandler(associationService service.AssociationService) *AssociationHandler {
	return &AssociationHandler{associationService: associationService}
}

// RegisterRoutes registers the link routes under their parent resources
func (h *AssociationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/villas/:id/contacts", h.ListVillaContacts)
	router.PUT("/villas/:id/contacts", h.LinkVillaContact)
	router.DELETE("/villas/:id/contacts/:contact_id", h.UnlinkVillaContact)
	router.GET("/contacts/:id/villas", h.ListContactVillas)

	router.GET("/companies/:id/contacts", h.ListCompanyContacts)
	router.PUT("/companies/:id/contacts", h.LinkCompanyContact)
	router.DELETE("/companies/:id/contacts/:contact_id", h.UnlinkCompanyContact)
}

func (h *AssociationHandler) ListVillaContacts(c *gin.Context) {
	villaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	links, err := h.associationService.ListVillaContacts(c.Request.Context(), villaID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, links)
}

// LinkVillaContact creates or replaces the link
// PUT /api/v1/villas/:id/contacts
func (h *AssociationHandler) LinkVillaContact(c *gin.Context) {
	villaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.VillaContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	link := &models.VillaContact{
		VillaID:     villaID,
		ContactID:   req.ContactID,
		IsRealOwner: req.IsRealOwner,
		ContactType: req.ContactType,
	}
	synced, err := h.associationService.LinkVillaContact(c.Request.Context(), link)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMutation(c, http.StatusOK, link, synced)
}

func (h *AssociationHandler) UnlinkVillaContact(c *gin.Context) {
	villaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	contactID, ok := parseID(c, "contact_id")
	if !ok {
		return
	}
	synced, err := h.associationService.UnlinkVillaContact(c.Request.Context(), villaID, contactID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMutation(c, http.StatusOK, nil, synced)
}

func (h *AssociationHandler) ListContactVillas(c *gin.Context) {
	contactID, ok := parseID(c, "id")
	if !ok {
		return
	}
	links, err := h.associationService.ListContactVillas(c.Request.Context(), contactID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, links)
}

func (h *AssociationHandler) ListCompanyContacts(c *gin.Context) {
	companyID, ok := parseID(c, "id")
	if !ok {
		return
	}
	links, err := h.associationService.ListCompanyContacts(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, links)
}

func (h *AssociationHandler) LinkCompanyContact(c *gin.Context) {
	companyID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CompanyContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	link := &models.CompanyContact{CompanyID: companyID, ContactID: req.ContactID, Role: req.Role}
	synced, err := h.associationService.LinkCompanyContact(c.Request.Context(), link)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMutation(c, http.StatusOK, link, synced)
}

func (h *AssociationHandler) UnlinkCompanyContact(c *gin.Context) {
	companyID, ok := parseID(c, "id")
	if !ok {
		return
	}
	contactID, ok := parseID(c, "contact_id")
	if !ok {
		return
	}
	synced, err := h.associationService.UnlinkCompanyContact(c.Request.Context(), companyID, contactID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMutation(c, http.StatusOK, nil, synced)
}
