package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// SessionStatus describes where a session is in its lifecycle.
type SessionStatus string

const (
	StatusReady     SessionStatus = "ready"     // Created, no steps taken
	StatusSuspended SessionStatus = "suspended" // Stopped between steps, resumable
	StatusHalted    SessionStatus = "halted"    // Program finished with a value
	StatusFailed    SessionStatus = "failed"    // Aborted by an output error
)

// Session is a persisted, resumable run of one program.
type Session struct {
	ID      string        `json:"id"`
	Program string        `json:"program"`
	Status  SessionStatus `json:"status"`

	// Steps is the total number of machine transitions taken so far.
	Steps uint64 `json:"steps"`

	// Output accumulates everything the program printed.
	Output string `json:"output"`

	// Result is the rendered final value once Status is StatusHalted.
	Result string `json:"result,omitempty"`

	// Error holds the failure message once Status is StatusFailed.
	Error string `json:"error,omitempty"`

	// Snapshot is the encoded machine state (or final value).
	Snapshot json.RawMessage `json:"snapshot,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a ready session for program.
func NewSession(id, program string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Program:   program,
		Status:    StatusReady,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Terminal reports whether the session can no longer advance.
func (s *Session) Terminal() bool {
	return s.Status == StatusHalted || s.Status == StatusFailed
}

// Clone returns a copy that shares no mutable memory with s.
func (s *Session) Clone() *Session {
	c := *s
	if s.Snapshot != nil {
		c.Snapshot = append(json.RawMessage(nil), s.Snapshot...)
	}
	return &c
}

// ValidSessionID rejects IDs that are empty or could escape a storage namespace.
func ValidSessionID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`+"\x00")
}
