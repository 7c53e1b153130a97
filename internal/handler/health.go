package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports liveness for load balancers and monitoring.  Readiness
// (DB, Redis, broker) is deliberately not checked here; a degraded
// dependency should surface as request errors, not take the pod out of
// rotation.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
