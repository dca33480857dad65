// Package model defines domain entities for the application.
package model

import "time"

// VisitorRecord is the stored association between a user ID and a visitor
// ID. Records live in the external document store and are owned by it; this
// service only ever reads them. The store guarantees at most one record per
// user_id.
type VisitorRecord struct {
	UserID    string    `firestore:"user_id" json:"user_id"`
	VisitorID string    `firestore:"visitor_id" json:"visitor_id"`
	CreatedAt time.Time `firestore:"created_at" json:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at" json:"updated_at"`
}

// LookupResult is the outward-facing projection of a successful lookup.
// UserID echoes the queried value as presented, and FoundAt is the
// request-processing timestamp, not the record's stored timestamps.
type LookupResult struct {
	VisitorID string    `json:"visitor_id"`
	UserID    string    `json:"user_id"`
	FoundAt   time.Time `json:"found_at"`
}
