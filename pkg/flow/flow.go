package flow

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// Phase tracks where a login attempt is in the redirect round trip.
type Phase string

const (
	// PhaseInitiated is set when a login begins; the browser is at the
	// external provider and the callback has not fired yet.
	PhaseInitiated Phase = "initiated"
	// PhaseCompleted marks a finished attempt. Stored sessions never carry
	// this phase because completion clears the session; the value exists
	// for logging and state assertions.
	PhaseCompleted Phase = "completed"
)

// Session is the short-lived state correlating the two phases of one login
// attempt. It must survive exactly one redirect round trip and nothing
// longer.
type Session struct {
	// ProviderID is the provider chosen in phase one.
	ProviderID string `json:"provider_id"`
	// State is the CSRF token echoed back by the provider on callback.
	State string `json:"state"`
	// Phase is the current flow phase.
	Phase Phase `json:"phase"`
	// StartedAt records when the attempt began.
	StartedAt time.Time `json:"started_at"`
}

// NewToken generates an opaque browser-session token. The token is the
// only thing the browser holds; all flow state lives server-side.
func NewToken() (string, error) {
	return randomString(32)
}

// NewState generates a CSRF state value for the provider handshake.
func NewState() (string, error) {
	return randomString(32)
}

func randomString(bytes int) (string, error) {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
