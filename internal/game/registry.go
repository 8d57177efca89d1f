package game

import (
	"sync"

	"github.com/mossvale/mossvale/internal/dependencies/clock"
	"github.com/mossvale/mossvale/internal/model"
)

// Registry maps each live connection to its player session. It is the sole
// owner of session state; callers only ever receive copies.
type Registry struct {
	clock clock.Clock

	mu       sync.RWMutex
	sessions map[model.ConnectionID]*model.PlayerSession
}

// NewRegistry creates an empty session registry
func NewRegistry(clock clock.Clock) *Registry {
	return &Registry{
		clock:    clock,
		sessions: make(map[model.ConnectionID]*model.PlayerSession),
	}
}

// Create constructs a session for a connection from a login payload.
// Returns model.ErrSessionExists when the connection already owns one.
func (r *Registry) Create(connID model.ConnectionID, login model.LoginPayload) (model.PlayerSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[connID]; ok {
		return model.PlayerSession{}, model.ErrSessionExists
	}

	session := &model.PlayerSession{
		ConnectionID: connID,
		PlayerID:     login.PlayerID,
		Name:         login.Name,
		Level:        login.Level,
		Exp:          login.Exp,
		Money:        login.Money,
		X:            login.PositionX,
		Y:            login.PositionY,
		Direction:    model.DirectionDown,
		ConnectedAt:  r.clock.Now(),
	}
	r.sessions[connID] = session
	return *session, nil
}

// Update merges movement fields into the connection's session. The second
// return is false when no session exists; no session is ever created here.
func (r *Registry) Update(connID model.ConnectionID, movement model.MovementPayload) (model.PlayerSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[connID]
	if !ok {
		return model.PlayerSession{}, false
	}

	session.X = movement.X
	session.Y = movement.Y
	session.VelocityX = movement.VelocityX
	session.VelocityY = movement.VelocityY
	if movement.Direction != "" {
		session.Direction = movement.Direction
	}
	if movement.AnimationKey != "" {
		session.AnimationKey = movement.AnimationKey
	}
	return *session, true
}

// Get returns a copy of the connection's session
func (r *Registry) Get(connID model.ConnectionID) (model.PlayerSession, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[connID]
	if !ok {
		return model.PlayerSession{}, false
	}
	return *session, true
}

// Remove detaches and returns the connection's session. Removing a
// connection without a session is a no-op.
func (r *Registry) Remove(connID model.ConnectionID) (model.PlayerSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[connID]
	if !ok {
		return model.PlayerSession{}, false
	}
	delete(r.sessions, connID)
	return *session, true
}

// Snapshot returns a copy of every live session, keyed by connection id.
// Used to answer a newly-joined client's full world request.
func (r *Registry) Snapshot() map[model.ConnectionID]model.PlayerSession {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make(map[model.ConnectionID]model.PlayerSession, len(r.sessions))
	for connID, session := range r.sessions {
		snapshot[connID] = *session
	}
	return snapshot
}

// Count returns the number of live sessions
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
