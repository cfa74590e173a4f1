package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ameeralns/Spleeter/application/ports/outbound"
	"github.com/ameeralns/Spleeter/infrastructure/gin_interface/dto"
)

type HealthController interface {
	Health(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type healthController struct {
	modelProvider outbound.ModelProviderPort
}

func NewHealthController(modelProvider outbound.ModelProviderPort) HealthController {
	return &healthController{
		modelProvider: modelProvider,
	}
}

func (h *healthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:      "healthy",
		ModelLoaded: h.modelProvider.Loaded(),
	})
}

func (h *healthController) RegisterRoutes(g *gin.Engine) {
	g.GET("/health", h.Health)
}
