package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/Kakazablone/AssetDome/internal/middleware"
	"github.com/Kakazablone/AssetDome/internal/service"
	"github.com/Kakazablone/AssetDome/pkg/response"

	"github.com/gin-gonic/gin"
)

// actorFrom rebuilds the acting user from the context keys RequireAuth set
func actorFrom(c *gin.Context) service.Actor {
	return service.Actor{
		ID:        c.GetString(middleware.ContextUserID),
		Name:      c.GetString(middleware.ContextUserName),
		Email:     c.GetString(middleware.ContextUserEmail),
		Superuser: c.GetBool(middleware.ContextIsSuperuser),
	}
}

// respondError translates service sentinel errors into HTTP statuses.
// Anything unrecognized is logged and reported as a plain 500 so database
// details never reach the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
	default:
		log.Printf("unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Internal server error"))
	}
}
