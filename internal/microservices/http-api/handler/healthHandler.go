package handler

import (
	"context"
	"net/http"

	"restaurantscorer/internal/microservices/http-api/dto"
	"restaurantscorer/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	svc service.ScoreEntryService
}

func NewHealthHandler(svc service.ScoreEntryService) *HealthHandler {
	return &HealthHandler{svc: svc}
}

func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
}

// Health always reports healthy while the process serves requests
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StatusResponse{Status: h.svc.Health()})
}

// Ready reports whether storage answers a ping
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Ready(ctx); err != nil {
		c.Error(err)
		c.JSON(http.StatusServiceUnavailable, dto.StatusResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "ready"})
}
