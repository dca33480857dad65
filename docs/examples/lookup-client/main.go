// Adagio Lookup Client Example
//
// This is a minimal example of how to resolve visitor IDs through the
// Adagio Visitor ID Lookup API.
//
// Usage:
//   export ADAGIO_API_KEY="sk_live_your_key_here"
//   export ADAGIO_BASE_URL="http://localhost:8080"  # optional
//   go run main.go user-123 user-456

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// LookupResult is the successful response from POST /lookup.
type LookupResult struct {
	VisitorID string `json:"visitor_id"`
	UserID    string `json:"user_id"`
	FoundAt   string `json:"found_at"`
}

// APIError is the error envelope returned on non-200 responses.
type APIError struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func main() {
	apiKey := os.Getenv("ADAGIO_API_KEY")
	if apiKey == "" {
		log.Fatal("ADAGIO_API_KEY environment variable is required")
	}

	baseURL := os.Getenv("ADAGIO_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	if len(os.Args) < 2 {
		log.Fatal("usage: go run main.go <user_id> [<user_id> ...]")
	}

	client := &http.Client{Timeout: 10 * time.Second}

	for _, userID := range os.Args[1:] {
		result, apiErr, err := lookup(client, baseURL, apiKey, userID)
		if err != nil {
			log.Fatalf("lookup failed for %s: %v", userID, err)
		}

		if apiErr != nil {
			switch apiErr.StatusCode {
			case http.StatusUnauthorized:
				log.Fatalf("✗ API key rejected: %s", apiErr.Message)
			case http.StatusNotFound:
				log.Printf("– No visitor ID for %s", userID)
			default:
				log.Printf("✗ %s: %s (%d)", userID, apiErr.Message, apiErr.StatusCode)
			}
			continue
		}

		log.Printf("✓ Resolved %s", result.UserID)
		log.Printf("  Visitor ID: %s", result.VisitorID)
		log.Printf("  Found at:   %s", result.FoundAt)
	}
}

// lookup calls POST /lookup for a single user ID. A non-nil *APIError means
// the service answered with an error envelope; err covers everything else.
func lookup(client *http.Client, baseURL, apiKey, userID string) (*LookupResult, *APIError, error) {
	payload, err := json.Marshal(map[string]string{"user_id": userID})
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/lookup", bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		var result LookupResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, nil, fmt.Errorf("decoding response: %w", err)
		}
		return &result, nil, nil
	}

	var apiErr APIError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
		return nil, nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil, &apiErr, nil
}
