package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gestionmed/admin-gateway/internal/api/handler"
	"github.com/gestionmed/admin-gateway/internal/api/middleware"
	"github.com/gestionmed/admin-gateway/internal/core/domain"
	"github.com/gestionmed/admin-gateway/internal/core/ports"
	"github.com/gestionmed/admin-gateway/internal/core/service"
	"github.com/gestionmed/admin-gateway/internal/infrastructure/backend"
)

// RouterDeps groups everything the router needs. Redis may be nil when the
// gateway runs on the in-memory session store.
type RouterDeps struct {
	Manager   *service.Manager
	Auth      ports.AuthService
	Store     ports.SessionStore
	Backend   *backend.Client
	Redis     *redis.Client
	LoginPath string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, deps.LoginPath)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("gateway"))

	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Session lifecycle ---
	sessionHandler := handler.NewSessionHandler(deps.Manager, deps.Auth, deps.Store)
	e.POST("/session/login", sessionHandler.Login)
	e.POST("/session/logout", sessionHandler.Logout)
	e.GET("/session", sessionHandler.Current)

	requireSession := middleware.Session(deps.Manager)
	e.POST("/auth/register", sessionHandler.Register, requireSession, middleware.Permission(domain.PermUsuariosCrear))

	// --- Resource pass-through, permission-gated per route ---
	proxy := handler.NewProxyHandler(deps.Backend)
	g := e.Group("/api", requireSession)
	for _, r := range resourceRoutes {
		g.Add(r.method, r.path, proxy.Forward, middleware.Permission(r.permission))
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Redis, deps.Backend)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}

// resourceRoutes binds each UI-facing resource operation to the permission
// literal that gates it. Paths are relative to the /api group and forwarded
// to the backend unchanged.
var resourceRoutes = []struct {
	method     string
	path       string
	permission string
}{
	{http.MethodGet, "/pacientes", domain.PermPacientesVer},
	{http.MethodGet, "/pacientes/:id", domain.PermPacientesVer},
	{http.MethodPost, "/pacientes", domain.PermPacientesCrear},
	{http.MethodPut, "/pacientes/:id", domain.PermPacientesEditar},
	{http.MethodDelete, "/pacientes/:id", domain.PermPacientesEliminar},

	{http.MethodGet, "/turnos", domain.PermTurnosVer},
	{http.MethodGet, "/turnos/:id", domain.PermTurnosVer},
	{http.MethodPost, "/turnos", domain.PermTurnosCrear},
	{http.MethodPut, "/turnos/:id", domain.PermTurnosEditar},
	{http.MethodDelete, "/turnos/:id", domain.PermTurnosCancelar},

	{http.MethodGet, "/profesionales", domain.PermProfesionalesVer},
	{http.MethodPut, "/profesionales/:id", domain.PermProfesionalesEditar},

	{http.MethodGet, "/pagos", domain.PermPagosVer},
	{http.MethodPost, "/pagos", domain.PermPagosCrear},

	{http.MethodGet, "/notas", domain.PermNotasVer},
	{http.MethodPost, "/notas", domain.PermNotasCrear},

	{http.MethodGet, "/evoluciones", domain.PermEvolucionesVer},
	{http.MethodPost, "/evoluciones", domain.PermEvolucionesCrear},
	{http.MethodPut, "/evoluciones/:id", domain.PermEvolucionesEditar},

	{http.MethodGet, "/archivos", domain.PermArchivosVer},
	{http.MethodPost, "/archivos", domain.PermArchivosSubir},
}
