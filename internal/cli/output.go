package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Account:
		o.printAccount(v)
	case AuthResult:
		o.printAuthResult(v)
	case Player:
		o.printPlayer(v)
	case PlayerList:
		o.printPlayerList(v)
	case ItemList:
		o.printItemList(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Account response type (matches API)
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// AuthResult combines account and token
type AuthResult struct {
	Account      Account `json:"account"`
	SessionToken string  `json:"session_token"`
}

// Player response type
type Player struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Money     int     `json:"money"`
	Exp       int     `json:"exp"`
	Level     int     `json:"level"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
}

// PlayerList response type
type PlayerList struct {
	Players []Player `json:"players"`
}

// ItemStats response type
type ItemStats struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Healing int `json:"healing"`
	Speed   int `json:"speed"`
}

// Item response type
type Item struct {
	ID     int       `json:"id"`
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	Rarity string    `json:"rarity"`
	Stats  ItemStats `json:"stats"`
}

// ItemList response type
type ItemList struct {
	Items []Item `json:"items"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printAccount(a Account) {
	fmt.Printf("Account: %s (%s)\n", a.Username, a.ID)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printAccount(a.Account)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.Name, p.ID)
	fmt.Printf("Level: %d (%d exp)\n", p.Level, p.Exp)
	fmt.Printf("Money: %d\n", p.Money)
	fmt.Printf("Position: (%.0f, %.0f)\n", p.PositionX, p.PositionY)
}

func (o *Output) printPlayerList(l PlayerList) {
	fmt.Printf("Players (%d):\n", len(l.Players))
	for _, p := range l.Players {
		fmt.Printf("  - %s (%s) - level %d, %d gold\n", p.Name, p.ID, p.Level, p.Money)
	}
}

func (o *Output) printItemList(l ItemList) {
	fmt.Printf("Items (%d):\n", len(l.Items))
	for _, item := range l.Items {
		fmt.Printf("  %3d  %-20s %-8s %s", item.ID, item.Name, item.Type, item.Rarity)
		stats := []string{}
		if item.Stats.Attack > 0 {
			stats = append(stats, fmt.Sprintf("atk %d", item.Stats.Attack))
		}
		if item.Stats.Defense > 0 {
			stats = append(stats, fmt.Sprintf("def %d", item.Stats.Defense))
		}
		if item.Stats.Healing > 0 {
			stats = append(stats, fmt.Sprintf("heal %d", item.Stats.Healing))
		}
		if item.Stats.Speed > 0 {
			stats = append(stats, fmt.Sprintf("spd %d", item.Stats.Speed))
		}
		if len(stats) > 0 {
			fmt.Printf("  [%s]", strings.Join(stats, ", "))
		}
		fmt.Println()
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
