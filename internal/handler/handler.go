// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/adagio/visitorid/internal/handler/dto"
)

// ServiceName is the banner returned by the root and health endpoints.
const ServiceName = "Adagio Visitor ID Lookup API"

// Handler wraps HTTP handlers that need no dependencies.
type Handler struct{}

// New creates a new Handler instance.
func New() *Handler {
	return &Handler{}
}

// Root is the service banner endpoint.
// GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{
		Message: ServiceName,
		Status:  "healthy",
	})
}

// Health is a liveness endpoint carrying the same body as the root
// endpoint. No dependency probes run here; a process that can serve the
// route is considered healthy.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{
		Message: ServiceName,
		Status:  "healthy",
	})
}

// NotFound handles 404 responses for unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not Found", "Resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed", "Method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already written; an encode failure here is unrecoverable.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes the canonical error envelope.
func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:      kind,
		Message:    message,
		StatusCode: status,
	})
}
