package httpserver

import "errors"

var (
	// ErrStart wraps failures to bind or serve.
	ErrStart = errors.New("failed to start HTTP server")

	// ErrShutdown wraps failures to drain within the shutdown timeout.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
)
