package model

import "time"

// ConnectionID identifies one live client connection.
// It is owned by the transport layer and opaque to everything else.
type ConnectionID string

// Direction a player sprite is facing
type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// PlayerSession is the transient authoritative gameplay state for one
// logged-in connection. It holds a back-reference to its connection id,
// never the connection itself. PlayerID is immutable once set.
type PlayerSession struct {
	ConnectionID ConnectionID `json:"connection_id"`
	PlayerID     PlayerID     `json:"player_id"`
	Name         string       `json:"name"`
	Level        int          `json:"level"`
	Exp          int          `json:"exp"`
	Money        int          `json:"money"`
	X            float64      `json:"x"`
	Y            float64      `json:"y"`
	VelocityX    float64      `json:"velocity_x"`
	VelocityY    float64      `json:"velocity_y"`
	Direction    Direction    `json:"direction"`
	AnimationKey string       `json:"animation_key"`
	ConnectedAt  time.Time    `json:"-"`
}
