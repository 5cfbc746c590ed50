package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const ResponseTypeSuccess = "success"

// Response is the body returned by every informational endpoint.
type Response struct {
	StatusCode   int    `json:"status_code"`
	ResponseType string `json:"response_type"`
	Detail       string `json:"detail"`
}

// ErrorResponse is the body returned for requests the router rejects.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func Success(detail string) Response {
	return Response{
		StatusCode:   http.StatusOK,
		ResponseType: ResponseTypeSuccess,
		Detail:       detail,
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		logger.Error("Failed to encode response", slog.Any("err", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		logger.Debug("Failed to write response", slog.Any("err", err))
	}
}
