// Package logger provides a structured logging facility based on Zap.
//
// It builds the process logger from configuration and offers small helpers that attach
// correlation fields.
//
// # Correlation
//
//   - WithRayID tags entries with the request id stored by the rayid middleware, so all
//     logs of one HTTP request can be grouped.
//   - WithRun tags entries with the id of a prepare run and the collection owner. CLI and
//     HTTP triggered runs log the same way.
//
// # Configuration
//
//   - Level: debug, info, warn, error. Debug selects the development preset.
//   - Format: json or console.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
