package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Kakazablone/AssetDome/internal/middleware"
	"github.com/Kakazablone/AssetDome/internal/service"
	"github.com/Kakazablone/AssetDome/internal/spreadsheet"
	"github.com/Kakazablone/AssetDome/pkg/pagination"
	"github.com/Kakazablone/AssetDome/pkg/response"

	"github.com/gin-gonic/gin"
)

type AssetHandler struct {
	assetService service.AssetService
}

// NewAssetHandler sets up the routing dependencies for Asset endpoints
func NewAssetHandler(assetService service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// RegisterRoutes binds the endpoints to the gin RouterGroup
func (h *AssetHandler) RegisterRoutes(router *gin.RouterGroup) {
	assets := router.Group("/assets")
	{
		assets.GET("", h.ListAssets)
		assets.POST("", h.CreateAsset)
		assets.GET("/export", h.ExportAssets)
		assets.POST("/import", h.ImportAssets)
		assets.GET("/:id", middleware.TrackAssetView(), h.GetAssetByID)
		assets.PUT("/:id", h.UpdateAsset)
		assets.PATCH("/:id", h.SetDisposed)
		assets.DELETE("/:id", h.DeleteAsset)
	}

	router.GET("/disposed_assets", h.ListDisposedAssets)
	router.GET("/recent_activity", h.GetRecentActivity)
}

// listQuery builds the service filter from the request's query string
func listQuery(c *gin.Context) service.AssetListQuery {
	return service.AssetListQuery{
		Search:             c.Query("search"),
		Status:             c.Query("status"),
		Condition:          c.Query("condition"),
		AssetType:          c.Query("asset_type"),
		DepreciationMethod: c.Query("depreciation_method"),
		MajorCategoryID:    c.Query("major_category_id"),
		MinorCategoryID:    c.Query("minor_category_id"),
		DepartmentID:       c.Query("department_id"),
		LocationID:         c.Query("location_id"),
		SupplierID:         c.Query("supplier_id"),
		EmployeeID:         c.Query("employee_id"),
		Disposed:           c.Query("disposed"),
		PurchasedFrom:      c.Query("purchased_from"),
		PurchasedTo:        c.Query("purchased_to"),
	}
}

// ListAssets handles GET /assets with filters and pagination
// @Summary      List assets
// @Description  Retrieves a paginated list of assets with optional filters. Disposed assets are excluded unless disposed=true or disposed=all.
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        page                 query  int     false  "Page number (default 1)"
// @Param        limit                query  int     false  "Items per page (default 20, max 100)"
// @Param        search               query  string  false  "Matches asset code, barcode, description, serial or model number"
// @Param        status               query  string  false  "ACTIVE or INACTIVE"
// @Param        condition            query  string  false  "Asset condition"
// @Param        asset_type           query  string  false  "MOVABLE or IMMOVABLE"
// @Param        major_category_id    query  string  false  "Filter by major category"
// @Param        minor_category_id    query  string  false  "Filter by minor category"
// @Param        department_id        query  string  false  "Filter by department"
// @Param        location_id          query  string  false  "Filter by location"
// @Param        supplier_id          query  string  false  "Filter by supplier"
// @Param        employee_id          query  string  false  "Filter by assigned employee"
// @Param        disposed             query  string  false  "true, false or all (default false)"
// @Param        purchased_from       query  string  false  "Purchased on or after (YYYY-MM-DD)"
// @Param        purchased_to         query  string  false  "Purchased on or before (YYYY-MM-DD)"
// @Success      200  {object}  response.Response{data=object}
// @Failure      400  {object}  response.Response
// @Router       /api/assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	params := pagination.Parse(c)

	assets, total, err := h.assetService.GetAssets(c.Request.Context(), listQuery(c), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("assets", assets, total)))
}

// ListDisposedAssets handles GET /disposed_assets
// @Summary      List disposed assets
// @Description  Retrieves a paginated list of disposed assets only
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "Page number (default 1)"
// @Param        limit  query  int  false  "Items per page (default 20)"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/disposed_assets [get]
func (h *AssetHandler) ListDisposedAssets(c *gin.Context) {
	params := pagination.Parse(c)

	query := listQuery(c)
	query.Disposed = "true"

	assets, total, err := h.assetService.GetAssets(c.Request.Context(), query, params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("assets", assets, total)))
}

// GetAssetByID handles GET /assets/:id
// @Summary      Get asset by ID
// @Description  Fetch a single asset with computed net book value and accumulated depreciation
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Asset ID"
// @Success      200  {object}  response.Response{data=service.AssetResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetAssetByID(c *gin.Context) {
	asset, err := h.assetService.GetAssetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, asset))
}

// GetRecentActivity handles GET /recent_activity, resolving the cookie to assets
// @Summary      Recently viewed assets
// @Description  Returns the last five assets the caller viewed, most recent first
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/recent_activity [get]
func (h *AssetHandler) GetRecentActivity(c *gin.Context) {
	cookie, _ := c.Cookie(middleware.RecentActivityCookie)

	assets, err := h.assetService.GetAssetsByIDs(c.Request.Context(), middleware.RecentAssetIDs(cookie))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"recent_assets": assets,
	}))
}

// CreateAsset handles POST /assets
// @Summary      Create a new asset
// @Description  Creates an asset with a generated asset code and writes an audit entry
// @Tags         assets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateAssetRequest  true  "Create Asset Payload"
// @Success      201      {object}  response.Response{data=service.AssetResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req service.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid(err))
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, asset))
}

// UpdateAsset handles PUT /assets/:id
// @Summary      Update asset
// @Description  Updates asset fields. The asset code is immutable and the barcode may only be changed by superusers.
// @Tags         assets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Asset ID"
// @Param        payload  body      service.UpdateAssetRequest  true  "Update Asset Payload"
// @Success      200      {object}  response.Response{data=service.AssetResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var req service.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid(err))
		return
	}

	asset, err := h.assetService.UpdateAsset(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, asset))
}

// SetDisposed handles PATCH /assets/:id to dispose or restore an asset
// @Summary      Dispose or restore asset
// @Description  Marks the asset disposed (is_disposed=true) or restores it (is_disposed=false), stamping who did it and when
// @Tags         assets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Asset ID"
// @Param        payload  body      service.DisposeAssetRequest  true  "Disposal flag"
// @Success      200      {object}  response.Response{data=service.AssetResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/assets/{id} [patch]
func (h *AssetHandler) SetDisposed(c *gin.Context) {
	var req service.DisposeAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid(err))
		return
	}

	asset, err := h.assetService.SetDisposed(c.Request.Context(), actorFrom(c), c.Param("id"), *req.IsDisposed)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, asset))
}

// DeleteAsset handles DELETE /assets/:id
// @Summary      Delete asset
// @Description  Deletes an asset permanently. Its asset code is never reused.
// @Tags         assets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Asset ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	if err := h.assetService.DeleteAsset(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Asset deleted successfully"))
}

// ExportAssets handles GET /assets/export, streaming the register as a file
// @Summary      Export assets
// @Description  Streams the filtered asset register as an xlsx workbook or csv file
// @Tags         assets
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        format  query  string  false  "xlsx (default) or csv"
// @Param        fields  query  string  false  "Comma-separated column names to include; defaults to all"
// @Success      200     {file}  file
// @Failure      400     {object}  response.Response
// @Router       /api/assets/export [get]
func (h *AssetHandler) ExportAssets(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", spreadsheet.FormatXLSX))
	if format != spreadsheet.FormatXLSX && format != spreadsheet.FormatCSV {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "format must be xlsx or csv"))
		return
	}

	fields, err := spreadsheet.ParseFields(c.Query("fields"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	records, err := h.assetService.ExportRecords(c.Request.Context(), listQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	fileName := fmt.Sprintf("assets_%s.%s", time.Now().Format("20060102_150405"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	switch format {
	case spreadsheet.FormatCSV:
		c.Header("Content-Type", "text/csv")
		err = spreadsheet.WriteAssetsCSV(c.Writer, records, fields)
	default:
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = spreadsheet.WriteAssetsXLSX(c.Writer, records, fields)
	}
	if err != nil {
		// Headers are already out; all we can do is drop the connection
		c.Abort()
		return
	}
	c.Status(http.StatusOK)
}

// ImportAssets handles POST /assets/import with a multipart file upload
// @Summary      Import assets
// @Description  Creates or updates assets from an uploaded xlsx or csv file. Rows that fail are returned in the conflict log; the rest still apply.
// @Tags         assets
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Spreadsheet (.xlsx or .csv)"
// @Success      200   {object}  response.Response{data=service.ImportResult}
// @Failure      400   {object}  response.Response
// @Router       /api/assets/import [post]
func (h *AssetHandler) ImportAssets(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Missing file upload: "+err.Error()))
		return
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	if format != spreadsheet.FormatXLSX && format != spreadsheet.FormatCSV {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Unsupported file format. Please use .xlsx or .csv files."))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Failed to open upload: "+err.Error()))
		return
	}
	defer file.Close()

	records, err := spreadsheet.ReadAssets(file, format)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	result, err := h.assetService.ImportAssets(c.Request.Context(), actorFrom(c), records)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}
