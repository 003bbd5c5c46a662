package handlers

import (
	"errors"

	"slotbook/internal/common"
	"slotbook/internal/services"

	"github.com/labstack/echo/v4"
)

// respondServiceError translates service sentinel errors into the standard
// error envelope. Unrecognized errors become a generic server error so
// internals never leak to clients.
func respondServiceError(c echo.Context, err error, resource string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return common.SendNotFoundError(c, resource)
	case errors.Is(err, services.ErrConflict):
		return common.SendConflictError(c, err.Error())
	case errors.Is(err, services.ErrInvalidArgument):
		return common.SendClientError(c, err.Error())
	case errors.Is(err, services.ErrUnauthenticated):
		return common.SendUnauthorizedError(c)
	case errors.Is(err, services.ErrForbidden):
		return common.SendForbiddenError(c)
	default:
		c.Logger().Errorf("%s: %v", resource, err)
		return common.SendServerError(c, "Operation failed")
	}
}
