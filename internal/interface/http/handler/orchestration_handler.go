package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/potterlabs/video-orchestrator/internal/domain/entity"
	"github.com/potterlabs/video-orchestrator/internal/orchestration"
)

// OrchestrationHandler exposes the routing/orchestration core over HTTP
// (spec §4.E).
type OrchestrationHandler struct {
	service *orchestration.Service
}

// NewOrchestrationHandler creates an OrchestrationHandler.
func NewOrchestrationHandler(service *orchestration.Service) *OrchestrationHandler {
	return &OrchestrationHandler{service: service}
}

// OrchestrateVideo handles POST /orchestrate/video.
func (h *OrchestrationHandler) OrchestrateVideo(c *gin.Context) {
	var request entity.VideoRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, entity.ErrInvalidInput)
		return
	}

	result, err := h.service.Orchestrate(c.Request.Context(), request)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AnalyzeRequest handles POST /analyze/request.
func (h *OrchestrationHandler) AnalyzeRequest(c *gin.Context) {
	var request entity.VideoRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, entity.ErrInvalidInput)
		return
	}

	analysis, err := h.service.Analyze(request)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"routing_decision":      analysis.Decision,
		"provider_capabilities": h.service.ProvidersCapabilities(),
		"analysis":              analysis,
	})
}

// ProvidersStatus handles GET /providers/status.
func (h *OrchestrationHandler) ProvidersStatus(c *gin.Context) {
	statuses := h.service.ProvidersStatus(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"providers": statuses})
}

// ProvidersCapabilities handles GET /providers/capabilities.
func (h *OrchestrationHandler) ProvidersCapabilities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": h.service.ProvidersCapabilities()})
}

// BatchOrchestrate handles POST /batch/orchestrate.
func (h *OrchestrationHandler) BatchOrchestrate(c *gin.Context) {
	var requests []entity.VideoRequest
	if err := c.ShouldBindJSON(&requests); err != nil {
		handleError(c, entity.ErrInvalidInput)
		return
	}

	results := h.service.OrchestrateBatch(c.Request.Context(), requests)

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Health handles GET /health.
func (h *OrchestrationHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
