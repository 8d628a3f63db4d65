package handler

import (
	"net/http"
	"strconv"

	"villahub/internal/microservices/http-api/dto"
	"villahub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CargoHandler struct {
	cargoService service.CargoService
}

func NewCargoHandler(cargoService service.CargoService) *CargoHandler {
	return &CargoHandler{cargoService: cargoService}
}

func (h *CargoHandler) RegisterRoutes(router *gin.RouterGroup) {
	cargos := router.Group("/cargos")
	{
		cargos.GET("", h.List)
		cargos.GET("/pending", h.Pending)
		cargos.GET("/:id", h.Get)
		cargos.POST("", h.Create)
		cargos.PUT("/:id", h.Update)
		cargos.DELETE("/:id", h.Delete)
		cargos.POST("/:id/calls", h.RecordCall)
	}
}

// List returns all cargos, or one villa's when villa_id is set
// GET /api/v1/cargos?villa_id=3
func (h *CargoHandler) List(c *gin.Context) {
	var villaID int64
	if raw := c.Query("villa_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid villa_id"})
			return
		}
		villaID = id
	}
	cargos, err := h.cargoService.ListCargos(c.Request.Context(), villaID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, cargos)
}

// Pending returns cargos whose recipient has not been reached yet
// GET /api/v1/cargos/pending
func (h *CargoHandler) Pending(c *gin.Context) {
	cargos, err := h.cargoService.ListPendingCalls(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, cargos)
}

func (h *CargoHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cargo, err := h.cargoService.GetCargo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cargo)
}

func (h *CargoHandler) Create(c *gin.Context) {
	var req dto.CargoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	cargo := req.ToModel(0)
	synced, err := h.cargoService.CreateCargo(c.Request.Context(), cargo)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMutation(c, http.StatusCreated, cargo, synced)
}

func (h *CargoHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CargoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	cargo := req.ToModel(id)
	synced, err := h.cargoService.UpdateCargo(c.Request.Context(), cargo)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMutation(c, http.StatusOK, cargo, synced)
}

func (h *CargoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	synced, err := h.cargoService.DeleteCargo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMutation(c, http.StatusOK, nil, synced)
}

// RecordCall counts a call attempt to the recipient
// POST /api/v1/cargos/:id/calls
func (h *CargoHandler) RecordCall(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.RecordCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	cargo, synced, err := h.cargoService.RecordCall(c.Request.Context(), id, req.Reached)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMutation(c, http.StatusOK, cargo, synced)
}
