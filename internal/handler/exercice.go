package handler

import (
	"net/http"
	"strings"

	"physio-service/internal/model"
	"physio-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type exerciceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	VideoLink   string `json:"video_link"`
}

// CreateExercice adds an exercise to the catalogue.
func (h *Handler) CreateExercice(c echo.Context) error {
	var req exerciceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return badRequest(c, "name is required")
	}

	exercice := &model.Exercice{
		Name:        req.Name,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		VideoLink:   req.VideoLink,
	}
	if err := h.exercices.Create(c.Request().Context(), exercice); err != nil {
		return respondError(c, err, "exercice not found")
	}

	logger.FromEcho(c).Info("Exercice created", zap.Uint("exercice_id", exercice.ID))
	return c.JSON(http.StatusCreated, exercice)
}

// ListExercices returns the whole catalogue.
func (h *Handler) ListExercices(c echo.Context) error {
	exercices, err := h.exercices.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "exercices not found")
	}
	return c.JSON(http.StatusOK, exercices)
}

// GetExercice returns one exercise by id.
func (h *Handler) GetExercice(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid exercice id")
	}

	exercice, err := h.exercices.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "exercice not found")
	}
	return c.JSON(http.StatusOK, exercice)
}
