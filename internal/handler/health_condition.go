package handler

import (
	"net/http"

	"physio-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type healthConditionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GetUserHealthConditions returns the conditions attached to a user.
func (h *Handler) GetUserHealthConditions(c echo.Context) error {
	userID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}

	conditions, err := h.conditions.ForUser(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err, "health conditions not found")
	}
	return c.JSON(http.StatusOK, conditions)
}

// AddUserHealthCondition attaches a condition, found or created by name, to a user.
func (h *Handler) AddUserHealthCondition(c echo.Context) error {
	userID, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	var req healthConditionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if req.Name == "" {
		return badRequest(c, "name is required")
	}

	hc, err := h.conditions.AttachToUser(c.Request().Context(), userID, req.Name, req.Description)
	if err != nil {
		return respondError(c, err, "user not found")
	}

	logger.FromEcho(c).Info("Health condition attached",
		zap.Uint("user_id", userID),
		zap.Uint("health_condition_id", hc.ID))
	return c.JSON(http.StatusCreated, hc)
}

// CreateHealthCondition adds a condition to the catalogue.
func (h *Handler) CreateHealthCondition(c echo.Context) error {
	var req healthConditionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	hc, err := h.conditions.Create(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return respondError(c, err, "health condition not found")
	}
	return c.JSON(http.StatusCreated, hc)
}

// ListHealthConditions returns the condition catalogue.
func (h *Handler) ListHealthConditions(c echo.Context) error {
	conditions, err := h.healthConditions.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "health conditions not found")
	}
	return c.JSON(http.StatusOK, conditions)
}

// GetHealthCondition returns one condition by id.
func (h *Handler) GetHealthCondition(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid health condition id")
	}

	hc, err := h.healthConditions.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "health condition not found")
	}
	return c.JSON(http.StatusOK, hc)
}
