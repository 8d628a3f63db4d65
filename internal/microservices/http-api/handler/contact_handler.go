package handler

import (
	"net/http"

	"villahub/internal/microservices/http-api/dto"
	"villahub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactService service.ContactService
}

func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) RegisterRoutes(router *gin.RouterGroup) {
	contacts := router.Group("/contacts")
	{
		contacts.GET("", h.List)
		contacts.GET("/:id", h.Get)
		contacts.POST("", h.Create)
		contacts.PUT("/:id", h.Update)
		contacts.DELETE("/:id", h.Delete)
	}
}

// List returns contacts, filtered by name or phone when q is set
// GET /api/v1/contacts?q=ali
func (h *ContactHandler) List(c *gin.Context) {
	contacts, err := h.contactService.SearchContacts(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, contacts)
}

func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	contact, err := h.contactService.GetContact(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	contact := req.ToModel(0)
	synced, err := h.contactService.CreateContact(c.Request.Context(), contact)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMutation(c, http.StatusCreated, contact, synced)
}

func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	contact := req.ToModel(id)
	synced, err := h.contactService.UpdateContact(c.Request.Context(), contact)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMutation(c, http.StatusOK, contact, synced)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	synced, err := h.contactService.DeleteContact(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMutation(c, http.StatusOK, nil, synced)
}
