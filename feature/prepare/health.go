package prepare

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck probes an optional dependency.
type HealthCheck func(ctx context.Context) error

// HealthHandler reports the state of the registered dependencies.
type HealthHandler struct {
	checks map[string]HealthCheck
}

// NewHealthHandler creates a health handler over checks.
func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	if checks == nil {
		checks = map[string]HealthCheck{}
	}
	return &HealthHandler{checks: checks}
}

// HandleHealth reports liveness and dependency state.
// @Summary Health
// @Description Reports service liveness and the state of optional dependencies (cache, database).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Healthy"
// @Failure 503 {object} map[string]interface{} "Degraded"
// @Router /health [get]
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	deps := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check(c.UserContext()); err != nil {
			deps[name] = err.Error()
			healthy = false
			continue
		}
		deps[name] = "ok"
	}

	status := fiber.StatusOK
	state := "ok"
	if !healthy {
		status = fiber.StatusServiceUnavailable
		state = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{"status": state, "dependencies": deps})
}
