package handler

import (
	"io"
	"net/http"

	"villahub/internal/microservices/http-api/dto"
	"villahub/internal/microservices/http-api/service"
	"villahub/internal/microservices/realtime"

	"github.com/gin-gonic/gin"
)

// EventSource hands out subscriptions to the client's event stream.
type EventSource interface {
	Events() (<-chan realtime.Event, func())
}

type SyncHandler struct {
	settingsService service.SettingsService
	events          EventSource
}

func NewSyncHandler(settingsService service.SettingsService, events EventSource) *SyncHandler {
	return &SyncHandler{settingsService: settingsService, events: events}
}

func (h *SyncHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.Status)
	router.POST("/reconnect", h.Reconnect)
	router.GET("/events", h.Events)

	settings := router.Group("/settings")
	{
		settings.GET("/endpoint", h.GetEndpoint)
		settings.PUT("/endpoint", h.UpdateEndpoint)
	}
}

// Status reports the connection state and the outbox depth
// GET /api/v1/status
func (h *SyncHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.settingsService.Status(c.Request.Context()))
}

// Reconnect connects now instead of waiting for the reconnection loop
// POST /api/v1/reconnect
func (h *SyncHandler) Reconnect(c *gin.Context) {
	if err := h.settingsService.Reconnect(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.settingsService.Status(c.Request.Context()))
}

func (h *SyncHandler) GetEndpoint(c *gin.Context) {
	e := h.settingsService.Endpoint()
	c.JSON(http.StatusOK, dto.EndpointResponse{Host: e.Host, Port: e.Port})
}

// UpdateEndpoint persists the endpoint and reconnects to it
// PUT /api/v1/settings/endpoint
func (h *SyncHandler) UpdateEndpoint(c *gin.Context) {
	var req dto.EndpointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	e := realtime.Endpoint{Host: req.Host, Port: req.Port}
	connected, err := h.settingsService.UpdateEndpoint(c.Request.Context(), e)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.EndpointResponse{Host: e.Host, Port: e.Port, Connected: connected})
}

// Events streams status changes and inbound frames as server-sent events
// GET /api/v1/events
func (h *SyncHandler) Events(c *gin.Context) {
	events, unsubscribe := h.events.Events()
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case e, ok := <-events:
			if !ok {
				return false
			}
			switch ev := e.(type) {
			case realtime.StatusEvent:
				c.SSEvent("status", dto.StatusEventResponse{
					Status: ev.Status.String(),
					Detail: ev.Detail,
					Text:   ev.String(),
					At:     ev.At,
				})
			case realtime.DataEvent:
				c.SSEvent("data", string(ev.Raw))
			}
			return true
		}
	})
}
