package handler

import (
	"net/http"

	"github.com/Kakazablone/AssetDome/internal/service"
	"github.com/Kakazablone/AssetDome/pkg/response"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	summaryService service.SummaryService
}

// NewSummaryHandler sets up the routing dependencies for the summary endpoint
func NewSummaryHandler(summaryService service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// RegisterRoutes binds the endpoints to the gin RouterGroup
func (h *SummaryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/summary", h.GetSummary)
}

// GetSummary handles GET /summary
// @Summary      Asset register summary
// @Description  Overall totals and per-category, department and location breakdowns of the active register. Disposed assets are counted but excluded from values.
// @Tags         summary
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.SummaryResponse}
// @Router       /api/summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	summary, err := h.summaryService.GetSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summary))
}
