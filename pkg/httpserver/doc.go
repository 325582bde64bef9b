// Package httpserver wraps http.Server with env-driven configuration and
// graceful shutdown. Run blocks until the context is canceled, SIGINT or
// SIGTERM arrives, or the listener fails; in-flight requests get
// ShutdownTimeout to drain.
package httpserver
