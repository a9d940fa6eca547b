// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface and contributes its routes to the
// HTTP server.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager holds the registry of features. Register adds one; LoadAll loads the
// enabled ones in registration order and fails on the first error.
package loader
