package auth

// EventType names the session-state transitions emitted by the identity
// provider layer.
type EventType string

const (
	EventSignedIn       EventType = "signed-in"
	EventSignedOut      EventType = "signed-out"
	EventTokenRefreshed EventType = "token-refreshed"
)

// Event is a single session-state transition. Seq is a monotonically
// increasing sequence number assigned at publish time; consumers use it
// to discard results of work that started before a later event was
// applied.
type Event struct {
	Seq     uint64
	Type    EventType
	Session *Session // nil for signed-out or when no session accompanies the event
}

// HasSession reports whether the event carries non-empty session material.
func (e Event) HasSession() bool {
	return e.Session != nil && e.Session.AccessToken != ""
}
