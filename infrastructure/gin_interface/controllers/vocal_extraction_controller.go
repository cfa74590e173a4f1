package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ameeralns/Spleeter/application/ports/inbound"
	"github.com/ameeralns/Spleeter/application/ports/outbound"
	"github.com/ameeralns/Spleeter/domain"
	"github.com/ameeralns/Spleeter/infrastructure/gin_interface/dto"
)

type VocalExtractionController interface {
	ExtractVocals(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type vocalExtractionController struct {
	logger         outbound.LoggerPort
	vocalExtractor inbound.VocalExtractorPort
}

func NewVocalExtractionController(logger outbound.LoggerPort, vocalExtractor inbound.VocalExtractorPort) VocalExtractionController {
	return &vocalExtractionController{
		logger:         logger,
		vocalExtractor: vocalExtractor,
	}
}

func (v *vocalExtractionController) ExtractVocals(c *gin.Context) {
	var req dto.ExtractVocalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: "request body must contain mp3_url"})
		return
	}

	jobID := uuid.NewString()

	result, err := v.vocalExtractor.Extract(c.Request.Context(), inbound.ExtractVocalsParams{
		JobID:     jobID,
		SourceURL: req.Mp3URL,
	})
	if err != nil {
		v.logger.ErrorWithFields(err, "Vocal extraction request failed", map[string]interface{}{
			"jobID": jobID,
			"kind":  string(domain.KindOf(err)),
		})
		c.JSON(statusFor(domain.KindOf(err)), dto.ErrorResponse{Detail: domain.Detail(err)})
		return
	}

	c.JSON(http.StatusOK, dto.ExtractVocalsResponse{
		VocalsURL:             result.VocalsURL,
		ProcessingTimeSeconds: result.ProcessingTimeSeconds,
	})
}

func (v *vocalExtractionController) RegisterRoutes(g *gin.Engine) {
	g.POST("/extract-vocals", v.ExtractVocals)
}

// statusFor maps each failure kind to exactly one HTTP status.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindInvalidRequest:
		return http.StatusBadRequest
	case domain.KindSourceUnavailable:
		return http.StatusBadRequest
	case domain.KindOverloaded:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
