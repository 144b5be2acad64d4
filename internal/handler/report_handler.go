package handler

import (
	"net/http"

	"github.com/Kakazablone/AssetDome/internal/service"
	"github.com/Kakazablone/AssetDome/pkg/pagination"
	"github.com/Kakazablone/AssetDome/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler sets up the routing dependencies for report job endpoints
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes binds the endpoints to the gin RouterGroup
func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	{
		reports.POST("", h.CreateReport)
		reports.GET("", h.ListReports)
		reports.GET("/:id", h.GetReportByID)
		reports.GET("/:id/download", h.DownloadReport)
	}
}

// CreateReport handles POST /reports, accepting the job for background rendering
// @Summary      Queue a report
// @Description  Accepts an export job with the same filters as the asset list and queues it for background rendering. Poll the job or listen on the websocket for completion.
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateReportRequest  true  "Report Request"
// @Success      202      {object}  response.Response{data=service.ReportJobResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/reports [post]
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req service.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid(err))
		return
	}

	job, err := h.reportService.CreateReport(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, response.Success(http.StatusAccepted, job))
}

// ListReports handles GET /reports
// @Summary      List report jobs
// @Description  Lists report jobs, newest first. Non-superusers only see their own jobs.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Page number (default 1)"
// @Param        limit   query  int     false  "Items per page (default 20)"
// @Param        status  query  string  false  "PENDING, RUNNING, COMPLETED or FAILED"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/reports [get]
func (h *ReportHandler) ListReports(c *gin.Context) {
	params := pagination.Parse(c)

	jobs, total, err := h.reportService.GetReports(c.Request.Context(), actorFrom(c), c.Query("status"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("reports", jobs, total)))
}

// GetReportByID handles GET /reports/:id for status polling
// @Summary      Get report job
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Report job ID"
// @Success      200  {object}  response.Response{data=service.ReportJobResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/reports/{id} [get]
func (h *ReportHandler) GetReportByID(c *gin.Context) {
	job, err := h.reportService.GetReportByID(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, job))
}

// DownloadReport handles GET /reports/:id/download
// @Summary      Download rendered report
// @Description  Streams the rendered file for a completed job. Jobs still pending or failed return 409.
// @Tags         reports
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        id   path  string  true  "Report job ID"
// @Success      200  {file}  file
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/reports/{id}/download [get]
func (h *ReportHandler) DownloadReport(c *gin.Context) {
	fileName, filePath, err := h.reportService.ResolveDownload(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.FileAttachment(filePath, fileName)
}
