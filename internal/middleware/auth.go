package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/adagio/visitorid/internal/auth"
	"github.com/adagio/visitorid/internal/metrics"
	"github.com/adagio/visitorid/internal/model"
)

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger      *slog.Logger
	Credentials *auth.Set
	Metrics     metrics.Recorder
}

// Auth returns a middleware that authenticates API requests.
// It extracts the bearer token from the Authorization header, validates it
// against the credential set, and injects the auth context into the request.
// The token itself is never logged.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logFailure := func(reason string) {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				logFailure("missing_token")
				recorder.IncAuthFailure("missing")
				writeAuthError(w)
				return
			}

			token, ok := extractBearerToken(header)
			if !ok {
				logFailure("malformed_header")
				recorder.IncAuthFailure("malformed")
				writeAuthError(w)
				return
			}

			name, ok := cfg.Credentials.Validate(token)
			if !ok {
				logFailure("invalid_token")
				recorder.IncAuthFailure("invalid")
				writeAuthError(w)
				return
			}

			recorder.IncAuthSuccess()
			cfg.Logger.Info("authentication successful",
				slog.String("credential", name),
				slog.String("ip", r.RemoteAddr),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithAuth(r.Context(), &model.AuthContext{CredentialName: name})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken pulls the token out of an Authorization header.
// Only the Bearer scheme is accepted.
func extractBearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", false
	}
	return token, true
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same body for all auth failures to prevent credential enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized","message":"Invalid API key","status_code":401}`))
}
