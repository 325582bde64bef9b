// Package redis provides connection helpers for Redis-backed components:
// URL-based configuration, retrying connect, and a health check probe.
package redis
