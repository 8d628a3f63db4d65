package handler

import (
	"net/http"
	"strconv"

	"villahub/internal/microservices/http-api/dto"
	"villahub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type VillaHandler struct {
	villaService service.VillaService
}

func NewVillaHandler(villaService service.VillaService) *VillaHandler {
	return &VillaHandler{villaService: villaService}
}

// RegisterRoutes registers villa routes
func (h *VillaHandler) RegisterRoutes(router *gin.RouterGroup) {
	villas := router.Group("/villas")
	{
		villas.GET("", h.List)
		villas.GET("/:id", h.Get)
		villas.POST("", h.Create)
		villas.PUT("/:id", h.Update)
		villas.DELETE("/:id", h.Delete)
	}
}

// List returns every villa, or the villas with the given number
// GET /api/v1/villas?no=12
func (h *VillaHandler) List(c *gin.Context) {
	if raw := c.Query("no"); raw != "" {
		no, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid villa number"})
			return
		}
		villas, err := h.villaService.FindVillasByNo(c.Request.Context(), no)
		if err != nil {
			respondError(c, err)
			return
		}
		respondList(c, villas)
		return
	}

	villas, err := h.villaService.ListVillas(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, villas)
}

// GET /api/v1/villas/:id
func (h *VillaHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	villa, err := h.villaService.GetVilla(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, villa)
}

// POST /api/v1/villas
func (h *VillaHandler) Create(c *gin.Context) {
	var req dto.VillaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	villa := req.ToModel(0)
	synced, err := h.villaService.CreateVilla(c.Request.Context(), villa)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMutation(c, http.StatusCreated, villa, synced)
}

// PUT /api/v1/villas/:id
func (h *VillaHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.VillaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	villa := req.ToModel(id)
	synced, err := h.villaService.UpdateVilla(c.Request.Context(), villa)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMutation(c, http.StatusOK, villa, synced)
}

// DELETE /api/v1/villas/:id
func (h *VillaHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	synced, err := h.villaService.DeleteVilla(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMutation(c, http.StatusOK, nil, synced)
}
