package handler

import (
	"net/http"

	"physio-service/internal/model"
	"physio-service/internal/service"
	"physio-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type userExerciceRequest struct {
	UserID      uint       `json:"user_id"`
	ExerciceID  uint       `json:"exercice_id"`
	Date        model.Date `json:"date"`
	Optional    bool       `json:"optional"`
	Checked     bool       `json:"checked"`
	Series      int        `json:"series"`
	Repetitions int        `json:"repetitions"`
}

type checkedRequest struct {
	Checked *bool `json:"checked"`
}

// CreateUserExercice prescribes an exercise to a user for one day.
func (h *Handler) CreateUserExercice(c echo.Context) error {
	var req userExerciceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	ue, err := h.assignments.Assign(c.Request().Context(), service.AssignInput{
		UserID:      req.UserID,
		ExerciceID:  req.ExerciceID,
		Date:        req.Date,
		Optional:    req.Optional,
		Checked:     req.Checked,
		Series:      req.Series,
		Repetitions: req.Repetitions,
	})
	if err != nil {
		return respondError(c, err, "user or exercice not found")
	}

	logger.FromEcho(c).Info("Exercice assigned",
		zap.Uint("user_exercice_id", ue.ID),
		zap.Uint("user_id", ue.UserID),
		zap.Stringer("date", ue.Date))
	return c.JSON(http.StatusCreated, ue)
}

// ListUserExercices lists a user's assignments, on one day when date is set.
// An empty result is a 404.
func (h *Handler) ListUserExercices(c echo.Context) error {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return badRequest(c, "invalid user id")
	}

	var date *model.Date
	if raw := c.QueryParam("date"); raw != "" {
		d, err := model.ParseDate(raw)
		if err != nil {
			return badRequest(c, "invalid date, expected YYYY-MM-DD")
		}
		date = &d
	}

	assignments, err := h.assignments.List(c.Request().Context(), userID, date)
	if err != nil {
		return respondError(c, err, "user exercices not found")
	}
	if len(assignments) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no exercices found for this user"})
	}
	return c.JSON(http.StatusOK, assignments)
}

// MarkUserExerciceChecked sets the completion flag, true when the body omits it.
func (h *Handler) MarkUserExerciceChecked(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "invalid user exercice id")
	}

	var req checkedRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request")
		}
	}
	checked := true
	if req.Checked != nil {
		checked = *req.Checked
	}

	ue, err := h.assignments.MarkChecked(c.Request().Context(), id, checked)
	if err != nil {
		return respondError(c, err, "user exercice not found")
	}
	return c.JSON(http.StatusOK, ue)
}

// ExercisesForUser returns the day's assignments joined with the catalogue.
func (h *Handler) ExercisesForUser(c echo.Context) error {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	raw := c.QueryParam("exercise_date")
	if raw == "" {
		return badRequest(c, "exercise_date is required")
	}
	date, err := model.ParseDate(raw)
	if err != nil {
		return badRequest(c, "invalid exercise_date, expected YYYY-MM-DD")
	}

	views, err := h.assignments.ExercisesForUserOnDate(c.Request().Context(), userID, date)
	if err != nil {
		return respondError(c, err, "user not found")
	}
	return c.JSON(http.StatusOK, views)
}
