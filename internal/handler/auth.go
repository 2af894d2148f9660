package handler

import (
	"errors"
	"net/http"
	"time"

	"physio-service/internal/middleware"
	"physio-service/internal/repository"
	"physio-service/internal/service"
	"physio-service/pkg/logger"
	"physio-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type registerRequest struct {
	LastName          string `json:"last_name"`
	FirstName         string `json:"first_name"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	Role              string `json:"role"`
	HealthConditionID *uint  `json:"health_condition_id"`
	KineID            *uint  `json:"id_kine"`
}

// tokenRequest accepts the OAuth2 password form as well as a JSON body.
type tokenRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (r tokenRequest) login() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// Register creates a user. A taken email is reported as a bad request.
func (h *Handler) Register(c echo.Context) error {
	log := logger.FromEcho(c)

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("Failed to parse registration request", zap.Error(err))
		return badRequest(c, "invalid request")
	}

	user, err := h.auth.Register(c.Request().Context(), service.RegisterInput{
		LastName:          req.LastName,
		FirstName:         req.FirstName,
		Email:             req.Email,
		Password:          req.Password,
		Role:              req.Role,
		HealthConditionID: req.HealthConditionID,
		KineID:            req.KineID,
	})
	if errors.Is(err, repository.ErrConflict) {
		log.Info("Email already registered", zap.String("email", req.Email))
		return badRequest(c, "email already registered")
	}
	if err != nil {
		return respondError(c, err, "referenced resource not found")
	}

	log.Info("User registered", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
	return c.JSON(http.StatusCreated, user)
}

// Token is the OAuth2 style password grant.
func (h *Handler) Token(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	result, err := h.auth.Login(c.Request().Context(), req.login(), req.Password)
	if err != nil {
		return h.loginFailed(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": result.Token.AccessToken,
		"token_type":   result.Token.TokenType,
		"expires_in":   expiresIn(result.Token.ExpiresAt),
	})
}

// Login checks a JSON email and password and returns the user summary along
// with a token.
func (h *Handler) Login(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	result, err := h.auth.Login(c.Request().Context(), req.login(), req.Password)
	if err != nil {
		return h.loginFailed(c, err)
	}

	logger.FromEcho(c).Info("User logged in", zap.Uint("user_id", result.User.ID))
	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Login successful",
		"user_id":      result.User.ID,
		"role":         result.User.Role,
		"last_name":    result.User.LastName,
		"first_name":   result.User.FirstName,
		"email":        result.User.Email,
		"access_token": result.Token.AccessToken,
		"token_type":   result.Token.TokenType,
		"expires_in":   expiresIn(result.Token.ExpiresAt),
	})
}

func (h *Handler) loginFailed(c echo.Context, err error) error {
	if errors.Is(err, service.ErrInvalidCredentials) {
		logger.FromEcho(c).Info("Login rejected")
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "incorrect email or password"})
	}
	return respondError(c, err, "user not found")
}

// Me returns the user the bearer token was issued to.
func (h *Handler) Me(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		prometheus.RecordAuthError("missing_identity")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}

	user, err := h.auth.CurrentUser(c.Request().Context(), userID)
	if errors.Is(err, repository.ErrNotFound) {
		// token outlived its user
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}
	if err != nil {
		return respondError(c, err, "user not found")
	}
	return c.JSON(http.StatusOK, user)
}

func expiresIn(at time.Time) int {
	secs := int(time.Until(at).Round(time.Second).Seconds())
	if secs < 0 {
		return 0
	}
	return secs
}
