package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Version is reported by the root banner.
const Version = "1.0.0"

const pingTimeout = 2 * time.Second

// Pinger is a dependency the health check can probe.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// HealthHandler serves the banner and the health check.
type HealthHandler struct {
	pingers []Pinger
	log     zerolog.Logger
}

// NewHealthHandler creates a health handler probing the given dependencies.
func NewHealthHandler(log zerolog.Logger, pingers ...Pinger) *HealthHandler {
	return &HealthHandler{pingers: pingers, log: log}
}

// Root godoc
// @Summary Service banner
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "store catalog api",
		"version": Version,
	})
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} Envelope
// @Failure 503 {object} Envelope
// @Router /healthz [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), pingTimeout)
	defer cancel()

	status := make(map[string]string, len(h.pingers))
	healthy := true
	for _, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			h.log.Error().Err(err).Str("dependency", p.Name()).Msg("health check failed")
			status[p.Name()] = "down"
			healthy = false
			continue
		}
		status[p.Name()] = "up"
	}

	if !healthy {
		return c.JSON(http.StatusServiceUnavailable, Envelope{Success: false, Message: "unhealthy", Data: status})
	}
	return respond(c, http.StatusOK, "ok", status)
}
