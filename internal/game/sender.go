package game

import "github.com/mossvale/mossvale/internal/model"

// Scope selects the recipients of a dispatched event. Every dispatcher
// action names its scope explicitly so the reply/broadcast asymmetry of the
// protocol stays auditable in one place.
type Scope int

const (
	// ReplySender delivers only to the originating connection
	ReplySender Scope = iota
	// BroadcastOthers delivers to every connection except the originator
	BroadcastOthers
	// BroadcastAll delivers to every connected client
	BroadcastAll
)

// String returns the scope name for logging
func (s Scope) String() string {
	switch s {
	case ReplySender:
		return "reply_sender"
	case BroadcastOthers:
		return "broadcast_others"
	case BroadcastAll:
		return "broadcast_all"
	default:
		return "unknown"
	}
}

// Sender delivers server events to connections. Implemented by the
// websocket hub; faked in dispatcher tests.
type Sender interface {
	Fanout(scope Scope, origin model.ConnectionID, event model.EventType, payload any)
}
