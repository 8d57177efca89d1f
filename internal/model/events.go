package model

import "encoding/json"

// EventType names an event on the wire
type EventType string

// Client -> server events
const (
	EventLogin          EventType = "login"
	EventPlayerMovement EventType = "playerMovement"
	EventLoadItems      EventType = "loadItems"
	EventPickupItem     EventType = "pickupItem"
	EventGetInventory   EventType = "getInventory"
)

// Server -> client events
const (
	EventLoginSuccess       EventType = "loginSuccess"
	EventLoginFailed        EventType = "loginFailed"
	EventCurrentPlayers     EventType = "currentPlayers"
	EventNewPlayer          EventType = "newPlayer"
	EventPlayerMoved        EventType = "playerMoved"
	EventPlayerDisconnected EventType = "playerDisconnected"
	EventGetItems           EventType = "getItems"
	EventDestroyItem        EventType = "destroyItem"
	EventLoadInventory      EventType = "loadInventory"
	EventInventoryError     EventType = "inventoryError"
)

// ClientEvent is the envelope for a client -> server message.
// Payloads are decoded per event type by the dispatcher.
type ClientEvent struct {
	Type    EventType       `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// ServerEvent is the envelope for a server -> client message
type ServerEvent struct {
	Type    EventType `json:"event"`
	Payload any       `json:"payload"`
}

// LoginPayload is the client payload for a login event
type LoginPayload struct {
	PlayerID  PlayerID `json:"player_id"`
	Name      string   `json:"name"`
	Level     int      `json:"level"`
	Exp       int      `json:"exp"`
	Money     int      `json:"money"`
	PositionX float64  `json:"position_x"`
	PositionY float64  `json:"position_y"`
}

// MovementPayload is the client payload for a playerMovement event
type MovementPayload struct {
	X            float64   `json:"x"`
	Y            float64   `json:"y"`
	VelocityX    float64   `json:"velocity_x"`
	VelocityY    float64   `json:"velocity_y"`
	Direction    Direction `json:"direction"`
	AnimationKey string    `json:"animation_key"`
}

// PickupPayload is the client payload for a pickupItem event
type PickupPayload struct {
	InstanceID ItemInstanceID `json:"instance_id"`
}

// GetInventoryPayload is the client payload for a getInventory event
type GetInventoryPayload struct {
	PlayerID PlayerID `json:"player_id"`
}

// MovedPayload echoes a movement to other clients with the mover's
// connection id attached
type MovedPayload struct {
	ConnectionID ConnectionID `json:"connection_id"`
	MovementPayload
}

// DisconnectedPayload carries the leaving connection's id
type DisconnectedPayload struct {
	ConnectionID ConnectionID `json:"connection_id"`
}

// DestroyItemPayload names the item instance removed from the world
type DestroyItemPayload struct {
	InstanceID ItemInstanceID `json:"instance_id"`
}

// ErrorPayload carries a human-readable error to one client
type ErrorPayload struct {
	Message string `json:"message"`
}
