package handler

import "net/http"

// Route binds one method and path to a handler.
type Route struct {
	Name    string
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Routes returns the route table in registration order. Paths are relative
// to the configured prefix.
func (h *DemoHandler) Routes() []Route {
	return []Route{
		{Name: "root", Method: http.MethodGet, Path: "/", Handler: h.Root},
		{Name: "demo", Method: http.MethodGet, Path: "/demo", Handler: h.Demo},
	}
}
