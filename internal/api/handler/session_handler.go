package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestionmed/admin-gateway/internal/api/metrics"
	"github.com/gestionmed/admin-gateway/internal/core/domain"
	"github.com/gestionmed/admin-gateway/internal/core/ports"
	"github.com/gestionmed/admin-gateway/internal/core/service"
)

// SessionHandler exposes the session lifecycle to the UI: login, logout,
// current-session inspection and user registration.
type SessionHandler struct {
	manager *service.Manager
	auth    ports.AuthService
	store   ports.SessionStore
}

func NewSessionHandler(manager *service.Manager, auth ports.AuthService, store ports.SessionStore) *SessionHandler {
	return &SessionHandler{manager: manager, auth: auth, store: store}
}

type loginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nombre   string `json:"nombre" validate:"required"`
	Apellido string `json:"apellido" validate:"required"`
	Rol      string `json:"rol" validate:"required,oneof=administrador profesional secretaria"`
}

type sessionResponse struct {
	State domain.SessionState `json:"state"`
	User  *domain.User        `json:"user,omitempty"`
}

// Login runs the full login flow and reports the authenticated user.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.manager.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		if domain.IsAuthError(err) || errors.Is(err, domain.ErrInactiveUser) {
			return err
		}
		// Transport fault: the backend is unreachable, not rejecting.
		return echo.NewHTTPError(http.StatusBadGateway, "backend no disponible")
	}

	h.store.SetRememberMe(req.RememberMe)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{State: domain.StateAuthenticated, User: user})
}

// Logout tears down the local session. Always succeeds.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Success      204
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.manager.Logout()
	return c.NoContent(http.StatusNoContent)
}

// Current reports the session state so the UI can tell "still checking"
// apart from "not logged in" and avoid a redirect flash at startup.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionResponse{
		State: h.manager.State(),
		User:  h.manager.CurrentUser(),
	})
}

// Register creates a new user on the backend. Gated by usuarios.crear.
//
// @Summary      Register a new user
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Rol:      req.Rol,
	})
	if err != nil {
		if domain.IsAuthError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, domain.MsgRegisterFailed)
		}
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInactiveUser):
		return "inactive"
	case domain.IsAuthError(err):
		return "rejected"
	default:
		return "transport_error"
	}
}
