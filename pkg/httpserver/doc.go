// Package httpserver wraps net/http with graceful shutdown and health
// probes.
//
// Run blocks until the context is cancelled or the process receives
// SIGINT/SIGTERM, then drains in-flight requests within the configured
// shutdown timeout. Listen failures wrap ErrStart, shutdown failures wrap
// ErrShutdown.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
package httpserver
