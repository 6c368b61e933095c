package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chessladder/chessladder/internal/api"
	"github.com/chessladder/chessladder/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "ladder-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/ladder")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
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

	// Create application against the in-memory backend
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{
		Logger:      logger,
		StorageType: factory.StorageTypeMemory,
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger: logger,
		Engine: app.Engine,
		Stats:  app.Stats,
		Clock:  app.Clock,
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
		addr: serverURL,
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
	t.Fatal("server did not become ready")
}

func TestCLI(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	server := startTestServer(t)
	defer server.shutdown()

	cli := newCLIRunner(t, server.addr)

	t.Run("health", func(t *testing.T) {
		out, err := cli.run("health")
		require.NoError(t, err, out)

		var result map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, "ok", result["status"])
	})

	t.Run("player add and get", func(t *testing.T) {
		out, err := cli.run("player", "add", "Alice")
		require.NoError(t, err, out)

		var player map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &player))
		assert.Equal(t, "Alice", player["name"])
		assert.Equal(t, 1200.0, player["rating"])

		out, err = cli.run("player", "get", "Alice")
		require.NoError(t, err, out)
		require.NoError(t, json.Unmarshal([]byte(out), &player))
		assert.Equal(t, "Alice", player["name"])
	})

	t.Run("player add with custom rating", func(t *testing.T) {
		out, err := cli.run("player", "add", "Magnus", "--rating", "2800")
		require.NoError(t, err, out)

		var player map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &player))
		assert.Equal(t, 2800.0, player["rating"])
	})

	t.Run("duplicate player fails", func(t *testing.T) {
		out, err := cli.run("player", "add", "Alice")
		require.Error(t, err)
		assert.Contains(t, out, "already")
	})

	t.Run("record game and view leaderboard", func(t *testing.T) {
		out, err := cli.run("player", "add", "Bob")
		require.NoError(t, err, out)

		out, err = cli.run("game", "record", "Alice", "Bob", "--result", "1-0", "--date", "2024-03-01")
		require.NoError(t, err, out)

		var game map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &game))
		assert.Equal(t, 1216.0, game["player1_new_rating"])
		assert.Equal(t, 1184.0, game["player2_new_rating"])

		out, err = cli.run("leaderboard")
		require.NoError(t, err, out)

		var players []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &players))
		require.Len(t, players, 3)
		assert.Equal(t, "Magnus", players[0]["name"])
		assert.Equal(t, "Alice", players[1]["name"])
		assert.Equal(t, "Bob", players[2]["name"])
	})

	t.Run("game record requires result flag", func(t *testing.T) {
		out, err := cli.run("game", "record", "Alice", "Bob")
		require.Error(t, err)
		assert.Contains(t, strings.ToLower(out), "result")
	})

	t.Run("trajectory", func(t *testing.T) {
		out, err := cli.run("trajectory", "Alice")
		require.NoError(t, err, out)

		var trajectory map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &trajectory))
		assert.Equal(t, "Alice", trajectory["player"])
		points, ok := trajectory["points"].([]any)
		require.True(t, ok)
		require.Len(t, points, 1)
	})

	t.Run("stats", func(t *testing.T) {
		out, err := cli.run("stats")
		require.NoError(t, err, out)

		var stats map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &stats))
		assert.Equal(t, 1.0, stats["total_games"])
		assert.Equal(t, "Magnus", stats["highest_rated_player"])
	})

	t.Run("recent games", func(t *testing.T) {
		out, err := cli.run("game", "recent", "--limit", "5")
		require.NoError(t, err, out)

		var games []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &games))
		require.Len(t, games, 1)
		assert.Equal(t, "2024-03-01", games[0]["date"])
	})

	t.Run("unknown player", func(t *testing.T) {
		out, err := cli.run("player", "get", "Ghost")
		require.Error(t, err)
		assert.Contains(t, strings.ToLower(out), "not found")
	})
}
