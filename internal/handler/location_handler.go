package handler

import (
	"net/http"

	"github.com/Kakazablone/AssetDome/internal/service"
	"github.com/Kakazablone/AssetDome/pkg/pagination"
	"github.com/Kakazablone/AssetDome/pkg/response"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	locationService service.LocationService
}

// NewLocationHandler sets up the routing dependencies for Location endpoints
func NewLocationHandler(locationService service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// RegisterRoutes binds the endpoints to the gin RouterGroup
func (h *LocationHandler) RegisterRoutes(router *gin.RouterGroup) {
	locations := router.Group("/locations")
	{
		locations.GET("", h.ListLocations)
		locations.GET("/:id", h.GetLocationByID)
		locations.POST("", h.CreateLocation)
		locations.PUT("/:id", h.UpdateLocation)
		locations.DELETE("/:id", h.DeleteLocation)
	}
}

// ListLocations handles GET /locations
// @Summary      List locations
// @Tags         locations
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Page number (default 1)"
// @Param        limit   query  int     false  "Items per page (default 20)"
// @Param        search  query  string  false  "Filter by name"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/locations [get]
func (h *LocationHandler) ListLocations(c *gin.Context) {
	params := pagination.Parse(c)

	locations, total, err := h.locationService.GetLocations(c.Request.Context(), c.Query("search"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("locations", locations, total)))
}

// GetLocationByID handles GET /locations/:id
// @Summary      Get location
// @Tags         locations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Location ID"
// @Success      200  {object}  response.Response{data=service.LocationResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/locations/{id} [get]
func (h *LocationHandler) GetLocationByID(c *gin.Context) {
	location, err := h.locationService.GetLocationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, location))
}

// CreateLocation handles POST /locations
// @Summary      Create location
// @Tags         locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateLocationRequest  true  "Create Payload"
// @Success      201      {object}  response.Response{data=service.LocationResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/locations [post]
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req service.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid(err))
		return
	}

	location, err := h.locationService.CreateLocation(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, location))
}

// UpdateLocation handles PUT /locations/:id
// @Summary      Update location
// @Tags         locations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Location ID"
// @Param        payload  body      service.UpdateLocationRequest  true  "Update Payload"
// @Success      200      {object}  response.Response{data=service.LocationResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/locations/{id} [put]
func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	var req service.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid(err))
		return
	}

	location, err := h.locationService.UpdateLocation(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, location))
}

// DeleteLocation handles DELETE /locations/:id
// @Summary      Delete location
// @Description  Fails with 409 while assets still reference the location
// @Tags         locations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Location ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/locations/{id} [delete]
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	if err := h.locationService.DeleteLocation(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Location deleted successfully"))
}
