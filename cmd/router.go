package main

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/angeloszaimis/demo-api/config"
	"github.com/angeloszaimis/demo-api/internal/cors"
	"github.com/angeloszaimis/demo-api/internal/handler"
	"github.com/angeloszaimis/demo-api/internal/metrics"
	"github.com/angeloszaimis/demo-api/internal/middleware"
)

// setupRouter registers the route table under prefix. The metrics endpoint
// is mounted only when a collector is given.
func setupRouter(demoHandler *handler.DemoHandler, prefix string, collector *metrics.Collector, metricsCfg config.MetricsConfig, service string) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(demoHandler.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(demoHandler.MethodNotAllowed)

	for _, route := range demoHandler.Routes() {
		router.HandleFunc(prefix+route.Path, route.Handler).
			Methods(route.Method).
			Name(route.Name)
	}

	if collector != nil {
		router.HandleFunc(prefix+metricsCfg.Path, collector.Handler(service)).
			Methods(http.MethodGet).
			Name("metrics")
	}

	return router
}

// buildHandler assembles the full request path: observation, then the
// cross-origin policy, then the router.
func buildHandler(cfg *config.Config, log *slog.Logger, collector *metrics.Collector) http.Handler {
	demoHandler := handler.NewDemoHandler(log)
	router := setupRouter(demoHandler, cfg.Server.Prefix, collector, cfg.Metrics, cfg.Logging.Name)

	var h http.Handler = cors.New(cors.FromConfig(cfg.CORS)).Handler(router)

	var events chan<- metrics.Event
	if collector != nil {
		events = collector.EventChannel()
	}

	return middleware.Observe(log, events, routeKeys(router))(h)
}

// routeKeys lists the metrics key of every route registered on router.
func routeKeys(router *mux.Router) []string {
	var keys []string
	_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}
		for _, method := range methods {
			keys = append(keys, middleware.RouteKey(method, path))
		}
		return nil
	})
	return keys
}
