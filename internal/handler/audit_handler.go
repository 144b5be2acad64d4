package handler

import (
	"net/http"

	"github.com/Kakazablone/AssetDome/internal/repository"
	"github.com/Kakazablone/AssetDome/internal/service"
	"github.com/Kakazablone/AssetDome/pkg/pagination"
	"github.com/Kakazablone/AssetDome/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
}

// NewAuditHandler sets up the routing dependencies for audit trail endpoints
func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// RegisterRoutes binds the endpoints to the gin RouterGroup. The whole group
// is superuser-only; the caller applies that middleware.
func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	audit := router.Group("/audit_logs")
	{
		audit.GET("", h.GetAuditEntries)
	}
}

// GetAuditEntries retrieves strictly paginated records, newest first
// @Summary      Get audit trail
// @Description  Retrieves audit entries, newest first, optionally filtered by entity or actor. Entries are immutable and survive actor deletion.
// @Tags         audit
// @Security     BearerAuth
// @Produce      json
// @Param        page         query  int     false  "Page number (default 1)"
// @Param        limit        query  int     false  "Items per page (default 20)"
// @Param        action       query  string  false  "Filter by action, e.g. CREATE_ASSET"
// @Param        entity_type  query  string  false  "Filter by entity type, e.g. Asset"
// @Param        entity_id    query  string  false  "Filter by entity id"
// @Param        actor_id     query  string  false  "Filter by acting user id"
// @Success      200  {object}  response.Response{data=object}
// @Failure      403  {object}  response.Response
// @Router       /api/audit_logs [get]
func (h *AuditHandler) GetAuditEntries(c *gin.Context) {
	params := pagination.Parse(c)

	filter := repository.AuditFilter{
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
		ActorID:    c.Query("actor_id"),
	}

	entries, total, err := h.auditService.GetAuditEntries(c.Request.Context(), filter, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("entries", entries, total)))
}
