package e2e_test

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostduel/server/internal/api"
	"github.com/ghostduel/server/internal/dependencies/clock"
	"github.com/ghostduel/server/internal/dependencies/random"
	"github.com/ghostduel/server/internal/services/arena"
	"github.com/ghostduel/server/internal/services/identity"
	"github.com/ghostduel/server/internal/storage/memory"
	"github.com/ghostduel/server/internal/testutil"
	"github.com/ghostduel/server/internal/transport/ws"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "ghostduel-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/ghostduel")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token"),
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

// startTestServer spins up the full router with an in-memory profile store
// and a short game duration so play sessions finish quickly
func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := testutil.NopLogger()
	store := memory.New()
	rnd := random.New()
	clk := clock.New()

	identityService := identity.New(store, rnd, clk, logger)
	coordinator := arena.NewCoordinator(identityService, clk, arena.Config{
		GameDuration:    2 * time.Second,
		DisconnectGrace: 100 * time.Millisecond,
	}, logger)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		IdentityService: identityService,
		WSHandler:       ws.NewHandler(coordinator, rnd, nil, logger),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestHealthCommand(t *testing.T) {
	server := startTestServer(t)
	runner := newCLIRunner(t, server.URL)

	output, err := runner.run("health")
	require.NoError(t, err, "health failed: %s", output)

	var health struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &health))
	assert.Equal(t, "ok", health.Status)
}

func TestRegisterCommand(t *testing.T) {
	server := startTestServer(t)
	runner := newCLIRunner(t, server.URL)

	output, err := runner.run("register", "--name", "Alice")
	require.NoError(t, err, "register failed: %s", output)

	assert.Contains(t, output, `"display_name": "Alice"`)

	// The token is persisted for later commands
	token, err := os.ReadFile(runner.tokenFile)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestPlayFullMatch(t *testing.T) {
	server := startTestServer(t)

	alice := newCLIRunner(t, server.URL)
	bob := newCLIRunner(t, server.URL)

	_, err := alice.run("register", "--name", "Alice")
	require.NoError(t, err)
	_, err = bob.run("register", "--name", "Bob")
	require.NoError(t, err)

	var wg sync.WaitGroup
	outputs := make([]string, 2)
	errs := make([]error, 2)

	for i, runner := range []*cliRunner{alice, bob} {
		wg.Add(1)
		go func(i int, r *cliRunner) {
			defer wg.Done()
			outputs[i], errs[i] = r.run("play")
		}(i, runner)
	}
	wg.Wait()

	for i := range outputs {
		require.NoError(t, errs[i], "play failed: %s", outputs[i])
		// Each player saw the match start and run to completion
		assert.Contains(t, outputs[i], `"session_id"`)
		assert.Contains(t, outputs[i], `"scores"`)
	}
}
