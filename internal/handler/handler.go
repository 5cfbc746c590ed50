package handler

import (
	"log/slog"
	"net/http"
)

const (
	WelcomeDetail = "Welcome to Demo API."
	DemoDetail    = "Demo endpoint"
)

type DemoHandler struct {
	logger *slog.Logger
}

func NewDemoHandler(logger *slog.Logger) *DemoHandler {
	return &DemoHandler{logger: logger}
}

// Root serves the welcome message.
func (h *DemoHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, Success(WelcomeDetail))
}

// Demo serves the demo message.
func (h *DemoHandler) Demo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, Success(DemoDetail))
}

func (h *DemoHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusNotFound, ErrorResponse{Detail: "Not Found"})
}

func (h *DemoHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusMethodNotAllowed, ErrorResponse{Detail: "Method Not Allowed"})
}
