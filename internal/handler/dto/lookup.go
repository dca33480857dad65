// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/adagio/visitorid/internal/model"
)

// LookupRequest represents the request body for a visitor ID lookup.
type LookupRequest struct {
	UserID string `json:"user_id"`
}

// LookupResponse represents a successful visitor ID lookup.
type LookupResponse struct {
	VisitorID string    `json:"visitor_id"`
	UserID    string    `json:"user_id"`
	FoundAt   time.Time `json:"found_at"`
}

// HealthResponse represents the service banner returned by / and /health.
type HealthResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ErrorResponse represents an API error envelope.
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

// ToLookupResponse converts a lookup result to its response DTO.
func ToLookupResponse(result *model.LookupResult) *LookupResponse {
	return &LookupResponse{
		VisitorID: result.VisitorID,
		UserID:    result.UserID,
		FoundAt:   result.FoundAt,
	}
}
