package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/angeloszaimis/demo-api/internal/metrics"
)

// UnmatchedRoute groups every request that is not one of the registered
// routes, whatever its method, path or status.
const UnmatchedRoute = "<unmatched>"

type statusRecorder struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.statusCode = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

// Observe logs every request and, when events is non-nil, emits metrics
// events without blocking the request path. routes holds the RouteKey of
// every registered route; anything else is counted under UnmatchedRoute.
func Observe(logger *slog.Logger, events chan<- metrics.Event, routes []string) func(http.Handler) http.Handler {
	known := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		known[route] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			logger.Debug("Handled request",
				slog.String("from", clientIP(r)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", wrapped.statusCode),
				slog.Duration("duration", duration))

			if events == nil {
				return
			}

			route := RouteKey(r.Method, r.URL.Path)
			if _, ok := known[route]; !ok {
				route = UnmatchedRoute
			}
			emit(events, metrics.Event{
				Type:      metrics.EventRequestReceived,
				Timestamp: start,
				Route:     route,
			})
			emit(events, metrics.Event{
				Type:       metrics.EventResponseCompleted,
				Timestamp:  time.Now(),
				Route:      route,
				Duration:   duration,
				StatusCode: wrapped.statusCode,
			})
		})
	}
}

// RouteKey names the metrics bucket for a method and path.
func RouteKey(method, path string) string {
	return method + " " + path
}

func emit(events chan<- metrics.Event, event metrics.Event) {
	select {
	case events <- event:
	default:
	}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}

	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	return host
}
