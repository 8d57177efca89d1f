package model

import "time"

// AccountID uniquely identifies a login account
type AccountID string

// PlayerID uniquely identifies a durable player character
type PlayerID string

// Account holds login credentials for a user
// Stored separately from players so the hash never travels with game state
type Account struct {
	ID           AccountID `json:"id"`
	Username     string    `json:"username"` // login username (immutable)
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Player is the durable record for one character
type Player struct {
	ID        PlayerID  `json:"id"`
	AccountID AccountID `json:"account_id"`
	Name      string    `json:"name"`
	Money     int       `json:"money"`
	Exp       int       `json:"exp"`
	Level     int       `json:"level"`
	PositionX float64   `json:"position_x"`
	PositionY float64   `json:"position_y"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerUpdate is a partial update against a stored player.
// Nil fields keep the stored value (coalesce merge), so a flush from a
// sparsely-populated session never nulls out unrelated columns.
type PlayerUpdate struct {
	Name      *string
	Money     *int
	Exp       *int
	Level     *int
	PositionX *float64
	PositionY *float64
}

// Apply merges the update into a player record in place
func (u PlayerUpdate) Apply(p *Player) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Money != nil {
		p.Money = *u.Money
	}
	if u.Exp != nil {
		p.Exp = *u.Exp
	}
	if u.Level != nil {
		p.Level = *u.Level
	}
	if u.PositionX != nil {
		p.PositionX = *u.PositionX
	}
	if u.PositionY != nil {
		p.PositionY = *u.PositionY
	}
}
