package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/adagio/visitorid/internal/auth"
	"github.com/adagio/visitorid/internal/handler/dto"
	"github.com/adagio/visitorid/internal/service"
)

const defaultMaxBodySize = 1 << 20 // 1 MiB

// LookupHandler handles HTTP requests for visitor ID lookups.
type LookupHandler struct {
	svc         *service.LookupService
	logger      *slog.Logger
	maxBodySize int64
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(svc *service.LookupService, logger *slog.Logger, maxBodySize int64) *LookupHandler {
	if maxBodySize <= 0 {
		maxBodySize = defaultMaxBodySize
	}
	return &LookupHandler{
		svc:         svc,
		logger:      logger,
		maxBodySize: maxBodySize,
	}
}

// Lookup handles POST /lookup.
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req dto.LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request", "Invalid request body")
		return
	}

	result, err := h.svc.Lookup(r.Context(), req.UserID)
	if err != nil {
		h.handleServiceError(w, req.UserID, err)
		return
	}

	h.logger.Info("visitor_lookup_hit",
		"user_id", req.UserID,
		"credential", auth.CredentialNameFromContext(r.Context()),
	)

	writeJSON(w, http.StatusOK, dto.ToLookupResponse(result))
}

// handleServiceError maps service errors to HTTP responses. Store-side
// detail stays in the log; the caller sees only the canonical envelope.
func (h *LookupHandler) handleServiceError(w http.ResponseWriter, userID string, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyUserID):
		writeError(w, http.StatusBadRequest, "Bad Request", "user_id is required")
	case errors.Is(err, service.ErrVisitorNotFound):
		h.logger.Info("visitor_lookup_miss", "user_id", userID)
		writeError(w, http.StatusNotFound, "Not Found", fmt.Sprintf("No visitor ID found for user_id: %s", userID))
	default:
		h.logger.Error("visitor_lookup_failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error", "Internal server error during lookup")
	}
}
