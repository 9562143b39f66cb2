// internal/model/requester.go
package model

import "github.com/google/uuid"

type ContextKey string

const (
	RequesterKey ContextKey = "requester"
)

// Requester is the user on whose behalf a workflow runs.
// The zero value is an anonymous visitor.
type Requester struct {
	UserID uuid.UUID
	Name   string
}

func (r Requester) Authenticated() bool {
	return r.UserID != uuid.Nil
}

// DeleteDecision is the state of a two-phase delete.
type DeleteDecision int

const (
	// DeletePending renders the confirmation view without touching data.
	DeletePending DeleteDecision = iota
	// DeleteConfirmed performs the deletion.
	DeleteConfirmed
)

func (d DeleteDecision) String() string {
	if d == DeleteConfirmed {
		return "confirmed"
	}
	return "pending"
}
