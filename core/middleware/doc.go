// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - auth: API key validation (X-API-Key). Disabled when no key is configured; probe
//     routes such as /health can be exempted.
//   - rayid: assigns every request a Ray ID, stored in the context under "ray_id" and
//     echoed in the X-Ray-ID response header for tracing.
//
// These middleware components are registered globally in the start command.
package middleware
