// Package logger is the single place the service's logging is configured.
// New builds a named *slog.Logger from explicit Options; callers pass the
// handle to every component that logs instead of relying on a mutated
// process-wide default. Three formats are available: the pipe separated
// line format (the default), a colored console format and JSON.
package logger
