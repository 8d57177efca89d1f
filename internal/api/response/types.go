package response

import (
	"github.com/mossvale/mossvale/internal/model"
	"github.com/mossvale/mossvale/internal/services/auth"
)

// Account represents an account in API responses
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// AccountFromModel converts a model.Account to a response Account
func AccountFromModel(a *model.Account) Account {
	return Account{
		ID:       string(a.ID),
		Username: a.Username,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Account      Account `json:"account"`
	SessionToken string  `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Account:      AccountFromModel(&s.Account),
		SessionToken: s.Token,
	}
}

// Player represents a player character in API responses
type Player struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Money     int     `json:"money"`
	Exp       int     `json:"exp"`
	Level     int     `json:"level"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:        string(p.ID),
		Name:      p.Name,
		Money:     p.Money,
		Exp:       p.Exp,
		Level:     p.Level,
		PositionX: p.PositionX,
		PositionY: p.PositionY,
	}
}

// PlayerList is the response for listing an account's players
type PlayerList struct {
	Players []Player `json:"players"`
}

// PlayerListFromModels converts a slice of players
func PlayerListFromModels(players []*model.Player) PlayerList {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return PlayerList{Players: out}
}

// ItemList is the response for listing catalog items
type ItemList struct {
	Items []model.ItemDefinition `json:"items"`
}
