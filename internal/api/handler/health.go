package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// defaultPingTimeout bounds the detector check made by /ready
const defaultPingTimeout = 2 * time.Second

// ReadinessChecker reports whether the service can answer requests
type ReadinessChecker interface {
	Ready() bool
}

// Pinger checks that a remote dependency answers
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	catalog     ReadinessChecker
	detector    Pinger
	pingTimeout time.Duration
	version     string
}

func NewHealthHandler(catalog ReadinessChecker, version string) *HealthHandler {
	return &HealthHandler{
		catalog:     catalog,
		pingTimeout: defaultPingTimeout,
		version:     version,
	}
}

// WithDetector makes /ready also require the landmark sidecar to answer
func (h *HealthHandler) WithDetector(p Pinger, timeout time.Duration) *HealthHandler {
	h.detector = p
	if timeout > 0 {
		h.pingTimeout = timeout
	}
	return h
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Ready GET /ready - ready once a catalog snapshot was installed and the
// detector (when configured) answers its health check
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := map[string]string{}

	if h.catalog != nil {
		if !h.catalog.Ready() {
			checks["catalog"] = "not_ready"
			return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
				Status: "catalog_not_ready",
				Checks: checks,
			})
		}
		checks["catalog"] = "ok"
	}

	if h.detector != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), h.pingTimeout)
		defer cancel()

		if err := h.detector.Ping(ctx); err != nil {
			checks["detector"] = err.Error()
			return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
				Status: "detector_unavailable",
				Checks: checks,
			})
		}
		checks["detector"] = "ok"
	}

	return c.JSON(HealthResponse{
		Status: "ready",
		Checks: checks,
	})
}
