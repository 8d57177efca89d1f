package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var jsonOutput bool
	var name string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream world events over the websocket",
		Long: `Connect to the game websocket and stream events in real-time.

Events include:
  - currentPlayers: Roster snapshot sent on login
  - newPlayer: Another player joined
  - playerMoved: Another player moved
  - playerDisconnected: A player left
  - getItems: World item listing
  - destroyItem: An item was picked up

With --name the connection logs in as a spectator session, so the
roster snapshot and join broadcasts are delivered to it.

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchEvents(name, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")
	cmd.Flags().StringVar(&name, "name", "", "Log in with this display name after connecting")

	return cmd
}

// WatchEvent is one received websocket event with a local timestamp
type WatchEvent struct {
	Time  time.Time       `json:"time"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func watchEvents(name string, jsonOutput bool) error {
	wsURL, err := websocketURL(cfg.ServerURL, cfg.Token)
	if err != nil {
		return err
	}

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("connection rejected: not logged in (run 'mossvale auth login' first)")
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if name != "" {
		login := map[string]any{
			"event":   "login",
			"payload": map[string]string{"name": name},
		}
		if err := conn.WriteJSON(login); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
	}

	if !jsonOutput {
		fmt.Printf("Connected to %s\n", wsURL)
	}

	// Close the socket on interrupt so ReadMessage unblocks
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			_ = conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				err = nil
			}
			if !jsonOutput {
				fmt.Println("Disconnected")
			}
			if err != nil && !strings.Contains(err.Error(), "use of closed network connection") {
				return fmt.Errorf("stream error: %w", err)
			}
			return nil
		}

		var envelope struct {
			Event   string          `json:"event"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal(message, &envelope); err != nil {
			continue
		}
		printWatchEvent(envelope.Event, envelope.Payload, jsonOutput)
	}
}

// websocketURL converts the configured HTTP server URL to the ws endpoint
func websocketURL(serverURL, token string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	if token != "" {
		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

func printWatchEvent(event string, data json.RawMessage, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		evt := WatchEvent{
			Time:  now,
			Event: event,
			Data:  data,
		}
		jsonData, _ := json.Marshal(evt)
		fmt.Println(string(jsonData))
	} else {
		timestamp := now.Format("2006-01-02 15:04:05")
		displayData := string(data)
		if len(displayData) > 100 {
			displayData = displayData[:100] + "..."
		}
		displayData = strings.ReplaceAll(displayData, "\n", " ")
		fmt.Printf("[%s] %s: %s\n", timestamp, event, displayData)
	}
}
