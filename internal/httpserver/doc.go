// Package httpserver wraps http.Server with address validation, an explicit
// bind step that surfaces port errors at startup, and graceful shutdown.
package httpserver
