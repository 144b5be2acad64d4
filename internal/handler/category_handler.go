package handler

import (
	"errors"
	"net/http"

	"github.com/Kakazablone/AssetDome/internal/service"
	"github.com/Kakazablone/AssetDome/pkg/pagination"
	"github.com/Kakazablone/AssetDome/pkg/response"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler sets up the routing dependencies for category endpoints
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes binds the endpoints to the gin RouterGroup
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	major := router.Group("/major_categories")
	{
		major.GET("", h.ListMajorCategories)
		major.GET("/:id", h.GetMajorCategoryByID)
		major.POST("", h.CreateMajorCategory)
		major.PUT("/:id", h.UpdateMajorCategory)
		major.DELETE("/:id", h.DeleteMajorCategory)
	}

	minor := router.Group("/minor_categories")
	{
		minor.GET("", h.ListMinorCategories)
		minor.GET("/:id", h.GetMinorCategoryByID)
		minor.POST("", h.CreateMinorCategory)
		minor.PUT("/:id", h.UpdateMinorCategory)
		minor.DELETE("/:id", h.DeleteMinorCategory)
	}
}

// respondDeleteImpact reports a cascade delete. An unconfirmed delete with
// dependents comes back as 409 carrying the impact counts, so the caller can
// show what a confirm=true retry would remove.
func respondDeleteImpact(c *gin.Context, impact *service.DeleteImpact, err error) {
	if err != nil {
		if impact != nil && errors.Is(err, service.ErrConflict) {
			resp := response.Error(http.StatusConflict, err.Error())
			resp.Data = impact
			c.JSON(http.StatusConflict, resp)
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"deleted": impact,
	}))
}

// ListMajorCategories handles GET /major_categories
// @Summary      List major categories
// @Description  Retrieves a paginated list of major categories with derived economic life
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Page number (default 1)"
// @Param        limit   query  int     false  "Items per page (default 20)"
// @Param        search  query  string  false  "Filter by name"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/major_categories [get]
func (h *CategoryHandler) ListMajorCategories(c *gin.Context) {
	params := pagination.Parse(c)

	categories, total, err := h.categoryService.GetMajorCategories(c.Request.Context(), c.Query("search"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("major_categories", categories, total)))
}

// GetMajorCategoryByID handles GET /major_categories/:id
// @Summary      Get major category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Major category ID"
// @Success      200  {object}  response.Response{data=service.MajorCategoryResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/major_categories/{id} [get]
func (h *CategoryHandler) GetMajorCategoryByID(c *gin.Context) {
	category, err := h.categoryService.GetMajorCategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

// CreateMajorCategory handles POST /major_categories
// @Summary      Create major category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateMajorCategoryRequest  true  "Create Payload"
// @Success      201      {object}  response.Response{data=service.MajorCategoryResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/major_categories [post]
func (h *CategoryHandler) CreateMajorCategory(c *gin.Context) {
	var req service.CreateMajorCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid(err))
		return
	}

	category, err := h.categoryService.CreateMajorCategory(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

// UpdateMajorCategory handles PUT /major_categories/:id
// @Summary      Update major category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                              true  "Major category ID"
// @Param        payload  body      service.UpdateMajorCategoryRequest  true  "Update Payload"
// @Success      200      {object}  response.Response{data=service.MajorCategoryResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/major_categories/{id} [put]
func (h *CategoryHandler) UpdateMajorCategory(c *gin.Context) {
	var req service.UpdateMajorCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid(err))
		return
	}

	category, err := h.categoryService.UpdateMajorCategory(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

// DeleteMajorCategory handles DELETE /major_categories/:id
// @Summary      Delete major category
// @Description  Deleting cascades to minor categories and assets. Without confirm=true the call reports the dependent counts as a 409 and deletes nothing.
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id       path   string  true   "Major category ID"
// @Param        confirm  query  bool    false  "Set true to confirm the cascade"
// @Success      200  {object}  response.Response{data=object}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response{data=service.DeleteImpact}
// @Router       /api/major_categories/{id} [delete]
func (h *CategoryHandler) DeleteMajorCategory(c *gin.Context) {
	confirm := c.Query("confirm") == "true"

	impact, err := h.categoryService.DeleteMajorCategory(c.Request.Context(), actorFrom(c), c.Param("id"), confirm)
	respondDeleteImpact(c, impact, err)
}

// ListMinorCategories handles GET /minor_categories
// @Summary      List minor categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        page               query  int     false  "Page number (default 1)"
// @Param        limit              query  int     false  "Items per page (default 20)"
// @Param        search             query  string  false  "Filter by name"
// @Param        major_category_id  query  string  false  "Filter by parent major category"
// @Success      200  {object}  response.Response{data=object}
// @Router       /api/minor_categories [get]
func (h *CategoryHandler) ListMinorCategories(c *gin.Context) {
	params := pagination.Parse(c)

	categories, total, err := h.categoryService.GetMinorCategories(c.Request.Context(), c.Query("major_category_id"), c.Query("search"), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, params.Envelope("minor_categories", categories, total)))
}

// GetMinorCategoryByID handles GET /minor_categories/:id
// @Summary      Get minor category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Minor category ID"
// @Success      200  {object}  response.Response{data=service.MinorCategoryResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/minor_categories/{id} [get]
func (h *CategoryHandler) GetMinorCategoryByID(c *gin.Context) {
	category, err := h.categoryService.GetMinorCategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

// CreateMinorCategory handles POST /minor_categories
// @Summary      Create minor category
// @Description  Creates a minor category under a major category. Names are unique within the parent.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateMinorCategoryRequest  true  "Create Payload"
// @Success      201      {object}  response.Response{data=service.MinorCategoryResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/minor_categories [post]
func (h *CategoryHandler) CreateMinorCategory(c *gin.Context) {
	var req service.CreateMinorCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid(err))
		return
	}

	category, err := h.categoryService.CreateMinorCategory(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, category))
}

// UpdateMinorCategory handles PUT /minor_categories/:id
// @Summary      Update minor category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                              true  "Minor category ID"
// @Param        payload  body      service.UpdateMinorCategoryRequest  true  "Update Payload"
// @Success      200      {object}  response.Response{data=service.MinorCategoryResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/minor_categories/{id} [put]
func (h *CategoryHandler) UpdateMinorCategory(c *gin.Context) {
	var req service.UpdateMinorCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid(err))
		return
	}

	category, err := h.categoryService.UpdateMinorCategory(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, category))
}

// DeleteMinorCategory handles DELETE /minor_categories/:id
// @Summary      Delete minor category
// @Description  Deleting cascades to assets. Without confirm=true the call reports the dependent count as a 409 and deletes nothing.
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id       path   string  true   "Minor category ID"
// @Param        confirm  query  bool    false  "Set true to confirm the cascade"
// @Success      200  {object}  response.Response{data=object}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response{data=service.DeleteImpact}
// @Router       /api/minor_categories/{id} [delete]
func (h *CategoryHandler) DeleteMinorCategory(c *gin.Context) {
	confirm := c.Query("confirm") == "true"

	impact, err := h.categoryService.DeleteMinorCategory(c.Request.Context(), actorFrom(c), c.Param("id"), confirm)
	respondDeleteImpact(c, impact, err)
}
