package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gestionmed/admin-gateway/internal/core/domain"
	"github.com/gestionmed/admin-gateway/internal/infrastructure/backend"
)

// ProxyHandler forwards resource calls (pacientes, turnos, pagos, …) to the
// backend verbatim through the client gate, so every resource request gets
// bearer attachment and 401 interception for free. Resource payloads and
// envelopes are owned by the backend; the gateway does not interpret them.
type ProxyHandler struct {
	client *backend.Client
}

func NewProxyHandler(client *backend.Client) *ProxyHandler {
	return &ProxyHandler{client: client}
}

// Forward relays the incoming request to the same path on the backend,
// minus the /api prefix, and streams the response back.
func (h *ProxyHandler) Forward(c echo.Context) error {
	req := c.Request()
	path := strings.TrimPrefix(req.URL.Path, "/api")

	resp, err := h.client.Do(req.Context(), req.Method, path, c.QueryParams(), req.Body, req.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			// Session already cleared by the gate; surface the redirect.
			return err
		}
		return echo.NewHTTPError(http.StatusBadGateway, "backend no disponible")
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	return c.Stream(resp.StatusCode, contentType, resp.Body)
}
