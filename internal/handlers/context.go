package handlers

import (
	"errors"
	"net/http"

	"github.com/frekans/backend/internal/models"
	"github.com/frekans/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the authenticated user id stored by the JWT
// middleware, or 0 when the request carries no identity.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// translateServiceError maps the service error taxonomy onto HTTP statuses.
func translateServiceError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidOperation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusForbidden, "you can only message mutual followers")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
