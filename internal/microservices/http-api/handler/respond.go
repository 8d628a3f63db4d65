package handler

import (
	"errors"
	"net/http"
	"strconv"

	"villahub/internal/microservices/http-api/dto"
	"villahub/internal/microservices/http-api/repository"
	"villahub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// parseID reads a positive int64 path parameter, writing 400 when it is not one
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
}

func respondMutation(c *gin.Context, status int, data any, synced bool) {
	c.JSON(status, dto.MutationResponse{Data: data, Synced: synced})
}

func respondList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, dto.ListResponse{Data: items, Total: len(items)})
}
