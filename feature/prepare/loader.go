package prepare

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	health  *HealthHandler
}

// NewFeature creates the collection feature.
func NewFeature(service *Service, timeout time.Duration, checks map[string]HealthCheck) *Feature {
	return &Feature{
		service: service,
		handler: NewHandler(service, timeout),
		health:  NewHealthHandler(checks),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "collection"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	app.Get("/health", f.health.HandleHealth)
	f.handler.RegisterRoutes(app)
	return nil
}
