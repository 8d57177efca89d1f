package game

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mossvale/mossvale/internal/model"
	"github.com/mossvale/mossvale/internal/services/inventory"
	"github.com/mossvale/mossvale/internal/services/world"
)

const storageCallTimeout = 5 * time.Second

// Dispatcher is the protocol handler: it validates incoming events, applies
// them to the session registry and the world item pool, and decides the
// fan-out scope of every reply. A connection is Anonymous until its login
// event creates a session and Closed after disconnect; all state checks
// reduce to "does the registry hold a session for this connection".
type Dispatcher struct {
	registry  *Registry
	pool      *world.Pool
	inventory *inventory.Service
	flusher   *Flusher
	sender    Sender
	logger    *slog.Logger
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(
	registry *Registry,
	pool *world.Pool,
	inventory *inventory.Service,
	flusher *Flusher,
	sender Sender,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		registry:  registry,
		pool:      pool,
		inventory: inventory,
		flusher:   flusher,
		sender:    sender,
		logger:    logger.With(slog.String("component", "dispatcher")),
	}
}

// HandleEvent processes one client event. Malformed or out-of-state events
// are dropped with a log entry; nothing here may tear down the connection
// or leak an error to unrelated clients.
func (d *Dispatcher) HandleEvent(ctx context.Context, connID model.ConnectionID, event model.ClientEvent) {
	switch event.Type {
	case model.EventLogin:
		d.handleLogin(connID, event.Payload)
	case model.EventPlayerMovement:
		d.handleMovement(connID, event.Payload)
	case model.EventLoadItems:
		d.handleLoadItems(connID)
	case model.EventPickupItem:
		d.handlePickupItem(ctx, connID, event.Payload)
	case model.EventGetInventory:
		d.handleGetInventory(ctx, connID, event.Payload)
	default:
		d.logger.Warn("unknown event dropped",
			slog.String("connection_id", string(connID)),
			slog.String("event", string(event.Type)))
	}
}

// HandleDisconnect flushes and removes the connection's session and tells
// every remaining client the player left. Safe to call for connections
// that never logged in, and idempotent.
func (d *Dispatcher) HandleDisconnect(connID model.ConnectionID) {
	session, ok := d.registry.Remove(connID)
	if !ok {
		return
	}

	// Fire-and-forget: removal and the roster broadcast never wait on storage
	d.flusher.Flush(session)

	d.sender.Fanout(BroadcastAll, connID, model.EventPlayerDisconnected,
		model.DisconnectedPayload{ConnectionID: connID})

	d.logger.Info("player disconnected",
		slog.String("connection_id", string(connID)),
		slog.String("player_id", string(session.PlayerID)),
		slog.Int("sessions", d.registry.Count()))
}

func (d *Dispatcher) handleLogin(connID model.ConnectionID, payload json.RawMessage) {
	var login model.LoginPayload
	if err := json.Unmarshal(payload, &login); err != nil {
		d.dropMalformed(connID, model.EventLogin, err)
		d.sender.Fanout(ReplySender, connID, model.EventLoginFailed,
			model.ErrorPayload{Message: "malformed login payload"})
		return
	}
	if login.Name == "" {
		d.logger.Warn("login without name dropped", slog.String("connection_id", string(connID)))
		d.sender.Fanout(ReplySender, connID, model.EventLoginFailed,
			model.ErrorPayload{Message: "name is required"})
		return
	}

	// A second login on a live connection replaces the session: the old one
	// is removed and announced as gone first, so other clients never render
	// a stale identity.
	if old, ok := d.registry.Remove(connID); ok {
		d.logger.Warn("re-login replaces existing session",
			slog.String("connection_id", string(connID)),
			slog.String("old_player_id", string(old.PlayerID)),
			slog.String("new_player_id", string(login.PlayerID)))
		d.flusher.Flush(old)
		d.sender.Fanout(BroadcastOthers, connID, model.EventPlayerDisconnected,
			model.DisconnectedPayload{ConnectionID: connID})
	}

	session, err := d.registry.Create(connID, login)
	if err != nil {
		d.logger.Error("failed to create session",
			slog.String("connection_id", string(connID)),
			slog.String("error", err.Error()))
		d.sender.Fanout(ReplySender, connID, model.EventLoginFailed,
			model.ErrorPayload{Message: "could not create session"})
		return
	}

	d.sender.Fanout(ReplySender, connID, model.EventLoginSuccess,
		model.ErrorPayload{Message: "welcome, " + session.Name})
	// The joiner gets the whole roster once; everyone else gets one join
	d.sender.Fanout(ReplySender, connID, model.EventCurrentPlayers, d.registry.Snapshot())
	d.sender.Fanout(BroadcastOthers, connID, model.EventNewPlayer, session)

	d.logger.Info("player logged in",
		slog.String("connection_id", string(connID)),
		slog.String("player_id", string(session.PlayerID)),
		slog.String("name", session.Name),
		slog.Int("sessions", d.registry.Count()))
}

func (d *Dispatcher) handleMovement(connID model.ConnectionID, payload json.RawMessage) {
	var movement model.MovementPayload
	if err := json.Unmarshal(payload, &movement); err != nil {
		d.dropMalformed(connID, model.EventPlayerMovement, err)
		return
	}

	// Movement before login never creates a session
	session, ok := d.registry.Update(connID, movement)
	if !ok {
		return
	}

	d.sender.Fanout(BroadcastOthers, connID, model.EventPlayerMoved, model.MovedPayload{
		ConnectionID: connID,
		MovementPayload: model.MovementPayload{
			X:            session.X,
			Y:            session.Y,
			VelocityX:    session.VelocityX,
			VelocityY:    session.VelocityY,
			Direction:    session.Direction,
			AnimationKey: session.AnimationKey,
		},
	})
}

func (d *Dispatcher) handleLoadItems(connID model.ConnectionID) {
	if _, ok := d.registry.Get(connID); !ok {
		d.logger.Warn("loadItems before login dropped", slog.String("connection_id", string(connID)))
		return
	}
	d.sender.Fanout(ReplySender, connID, model.EventGetItems, d.pool.List())
}

func (d *Dispatcher) handlePickupItem(ctx context.Context, connID model.ConnectionID, payload json.RawMessage) {
	var pickup model.PickupPayload
	if err := json.Unmarshal(payload, &pickup); err != nil {
		d.dropMalformed(connID, model.EventPickupItem, err)
		return
	}
	if pickup.InstanceID == "" {
		d.logger.Warn("pickup without instance id dropped", slog.String("connection_id", string(connID)))
		return
	}

	session, ok := d.registry.Get(connID)
	if !ok {
		d.logger.Warn("pickup before login dropped", slog.String("connection_id", string(connID)))
		return
	}

	item, removed := d.pool.TryRemove(pickup.InstanceID)
	if !removed {
		// Raced another pickup or the id never existed. No broadcast, no
		// inventory change; the requester just sees nothing happen.
		d.logger.Info("pickup lost",
			slog.String("connection_id", string(connID)),
			slog.String("instance_id", string(pickup.InstanceID)))
		return
	}

	d.sender.Fanout(ReplySender, connID, model.EventGetItems, d.pool.List())
	d.sender.Fanout(BroadcastOthers, connID, model.EventDestroyItem,
		model.DestroyItemPayload{InstanceID: item.ID})

	if session.PlayerID == "" {
		d.logger.Warn("pickup by session without player id, not persisted",
			slog.String("connection_id", string(connID)),
			slog.String("instance_id", string(item.ID)))
		return
	}

	// The item is already out of the pool; a failed grant is logged, not
	// surfaced, mirroring the disconnect flush contract
	grantCtx, cancel := context.WithTimeout(ctx, storageCallTimeout)
	defer cancel()
	if err := d.inventory.Grant(grantCtx, session.PlayerID, item.Def.ID, 1); err != nil {
		d.logger.Error("failed to grant picked up item",
			slog.String("player_id", string(session.PlayerID)),
			slog.Int("item_def_id", int(item.Def.ID)),
			slog.String("error", err.Error()))
	}
}

func (d *Dispatcher) handleGetInventory(ctx context.Context, connID model.ConnectionID, payload json.RawMessage) {
	var req model.GetInventoryPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		d.dropMalformed(connID, model.EventGetInventory, err)
		return
	}

	session, ok := d.registry.Get(connID)
	if !ok {
		d.logger.Warn("getInventory before login dropped", slog.String("connection_id", string(connID)))
		return
	}

	playerID := req.PlayerID
	if playerID == "" {
		playerID = session.PlayerID
	}
	if playerID == "" {
		d.sender.Fanout(ReplySender, connID, model.EventInventoryError,
			model.ErrorPayload{Message: "no player bound to this session"})
		return
	}

	readCtx, cancel := context.WithTimeout(ctx, storageCallTimeout)
	defer cancel()
	items, err := d.inventory.Get(readCtx, playerID)
	if err != nil {
		d.logger.Error("inventory read failed",
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()))
		d.sender.Fanout(ReplySender, connID, model.EventInventoryError,
			model.ErrorPayload{Message: "could not load inventory"})
		return
	}

	d.sender.Fanout(ReplySender, connID, model.EventLoadInventory, items)
}

func (d *Dispatcher) dropMalformed(connID model.ConnectionID, event model.EventType, err error) {
	d.logger.Warn("malformed payload dropped",
		slog.String("connection_id", string(connID)),
		slog.String("event", string(event)),
		slog.String("error", err.Error()))
}
