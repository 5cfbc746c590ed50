// Package handler implements the read-only endpoints of the demo API and
// the ordered route table that maps each (method, path) pair onto them.
// Handlers are plain http.HandlerFuncs so they can be invoked directly with
// httptest requests, independently of the router that serves them.
package handler
