package handler

import (
	"net/http"

	"github.com/Kakazablone/AssetDome/internal/middleware"
	"github.com/Kakazablone/AssetDome/internal/service"
	"github.com/Kakazablone/AssetDome/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler sets up the routing dependencies for authentication endpoints
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes binds the endpoints to the gin RouterGroup
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)

		auth.GET("/me", middleware.RequireAuth(), h.GetMe)
		auth.PUT("/change_password", middleware.RequireAuth(), h.ChangePassword)
	}
}

// Register handles POST /auth/register
// @Summary      Register user
// @Description  Creates a regular account and signs the caller in. Superuser status can only be granted later by an existing superuser.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RegisterRequest  true  "Registration Payload"
// @Success      201      {object}  response.Response{data=service.TokenPairResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid(err))
		return
	}

	tokens, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetTokenCookies(c, tokens.AccessToken, tokens.RefreshToken, tokens.RememberMe)

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, tokens))
}

// Login handles POST /auth/login
// @Summary      Login
// @Description  Authenticates by email and password. remember_me extends the refresh token from 7 to 30 days.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Login Credentials"
// @Success      200      {object}  response.Response{data=service.TokenPairResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid(err))
		return
	}

	tokens, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetTokenCookies(c, tokens.AccessToken, tokens.RefreshToken, tokens.RememberMe)

	c.JSON(http.StatusOK, response.Success(http.StatusOK, tokens))
}

// refreshTokenFrom reads the refresh token from the cookie, falling back to
// the request body for non-browser clients.
func refreshTokenFrom(c *gin.Context) string {
	if token, err := c.Cookie("refresh_token"); err == nil && token != "" {
		return token
	}
	var req service.RefreshRequest
	if err := c.ShouldBindJSON(&req); err == nil {
		return req.RefreshToken
	}
	return ""
}

// Refresh handles POST /auth/refresh
// @Summary      Refresh tokens
// @Description  Rotates the refresh token and issues a new access token. The presented refresh token is revoked either way.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RefreshRequest  false  "Refresh token (optional when the cookie is set)"
// @Success      200      {object}  response.Response{data=service.TokenPairResponse}
// @Failure      401      {object}  response.Response
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := refreshTokenFrom(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Missing refresh token"))
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetTokenCookies(c, tokens.AccessToken, tokens.RefreshToken, tokens.RememberMe)

	c.JSON(http.StatusOK, response.Success(http.StatusOK, tokens))
}

// Logout handles POST /auth/logout
// @Summary      Logout
// @Description  Revokes the stored refresh token and clears the auth cookies
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := refreshTokenFrom(c); token != "" {
		// Revocation failures still clear the cookies; the token would
		// expire on its own anyway.
		_ = h.authService.Logout(c.Request.Context(), token)
	}

	middleware.ClearTokenCookies(c)

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Logged out"))
}

// GetMe handles GET /auth/me
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.UserResponse}
// @Failure      401  {object}  response.Response
// @Router       /api/auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, err := h.authService.CurrentUser(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// ChangePassword handles PUT /auth/change_password
// @Summary      Change password
// @Description  Verifies the current password before setting the new one, then revokes all refresh tokens for the account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ChangePasswordRequest  true  "Password Change Payload"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/auth/change_password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req service.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Invalid(err))
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), actorFrom(c), req); err != nil {
		respondError(c, err)
		return
	}

	middleware.ClearTokenCookies(c)

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Password changed, please sign in again"))
}
