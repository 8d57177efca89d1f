package e2e_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mossvale/mossvale/internal/api"
	"github.com/mossvale/mossvale/internal/factory"
	"github.com/mossvale/mossvale/internal/testutil"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "mossvale-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/mossvale")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	projectRoot := findProjectRoot(t)
	app, err := factory.New(factory.Config{
		CatalogPath: filepath.Join(projectRoot, "data/items.json"),
	})
	require.NoError(t, err)

	logger := testutil.NopLogger()

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		PlayersService: app.PlayersService,
		CatalogService: app.CatalogService,
		Hub:            app.Hub,
		Dispatcher:     app.Dispatcher,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type authResponse struct {
	Account struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"account"`
	SessionToken string `json:"session_token"`
}

type playerResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Money     int     `json:"money"`
	Exp       int     `json:"exp"`
	Level     int     `json:"level"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
}

type playerListResponse struct {
	Players []playerResponse `json:"players"`
}

type itemListResponse struct {
	Items []struct {
		ID     int    `json:"id"`
		Name   string `json:"name"`
		Type   string `json:"type"`
		Rarity string `json:"rarity"`
	} `json:"items"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_AuthCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register
	output, err := cli.run("auth", "register", "--user", "alice", "--pass", "opensesame")
	require.NoError(t, err, "output: %s", output)

	var registerResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &registerResp))
	assert.Equal(t, "alice", registerResp.Account.Username)
	assert.NotEmpty(t, registerResp.SessionToken)

	// Login again
	output, err = cli.run("auth", "login", "--user", "alice", "--pass", "opensesame")
	require.NoError(t, err, "output: %s", output)

	var loginResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &loginResp))
	assert.Equal(t, registerResp.Account.ID, loginResp.Account.ID)

	// Wrong password is rejected
	output, err = cli.run("auth", "login", "--user", "alice", "--pass", "wrong")
	require.Error(t, err, "output: %s", output)
}

func TestCLI_PlayerCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register (token saved to the token file)
	output, err := cli.run("auth", "register", "--user", "alice", "--pass", "opensesame")
	require.NoError(t, err, "output: %s", output)

	// Create a character
	output, err = cli.run("player", "create", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	var created playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, 1, created.Level)
	assert.NotEmpty(t, created.ID)

	// List characters
	output, err = cli.run("player", "list")
	require.NoError(t, err, "output: %s", output)

	var list playerListResponse
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	require.Len(t, list.Players, 1)
	assert.Equal(t, created.ID, list.Players[0].ID)
}

func TestCLI_ItemCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Item listing requires auth
	output, err := cli.runWithToken("bogus", "item", "list")
	require.Error(t, err, "output: %s", output)

	output, err = cli.run("auth", "register", "--user", "alice", "--pass", "opensesame")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("item", "list")
	require.NoError(t, err, "output: %s", output)

	var items itemListResponse
	require.NoError(t, json.Unmarshal([]byte(output), &items))
	require.NotEmpty(t, items.Items)
	assert.Equal(t, "Mushroom", items.Items[0].Name)
}
