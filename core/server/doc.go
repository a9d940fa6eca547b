// Package server holds the HTTP server configuration.
//
// The start command reads this section to decide where to listen, whether the API key
// middleware is active and how long a prepare run triggered over HTTP may take.
//
// # Usage
//
//	app.Listen(cfg.Server.Address())
//	ctx, cancel := context.WithTimeout(ctx, cfg.Server.PrepareTimeout())
package server
