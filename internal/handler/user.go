package handler

import (
	"net/http"
	"strconv"

	"physio-service/internal/repository"

	"github.com/labstack/echo/v4"
)

// GetUser returns one user by id.
func (h *Handler) GetUser(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}

	user, err := h.users.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "user not found")
	}
	return c.JSON(http.StatusOK, user)
}

// ListUsers lists users, restricted to one practitioner's patients when
// id_kine is given.
func (h *Handler) ListUsers(c echo.Context) error {
	var filter repository.UserFilter
	if raw := c.QueryParam("id_kine"); raw != "" {
		kineID, err := strconv.ParseUint(raw, 10, 0)
		if err != nil {
			return badRequest(c, "invalid id_kine")
		}
		id := uint(kineID)
		filter.KineID = &id
	}

	users, err := h.users.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err, "users not found")
	}
	return c.JSON(http.StatusOK, users)
}
