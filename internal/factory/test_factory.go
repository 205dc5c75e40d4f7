package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/ghostduel/server/internal/dependencies/mocks"
	"github.com/ghostduel/server/internal/services/arena"
	"github.com/ghostduel/server/internal/services/identity"
	"github.com/ghostduel/server/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithArenaConfig(arena.DefaultConfig())
}

// NewTestAppWithArenaConfig creates a test App with a specific arena config
func NewTestAppWithArenaConfig(cfg arena.Config) *TestApp {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	identityService := identity.New(store, mockRandom, mockClock, logger)
	coordinator := arena.NewCoordinator(identityService, mockClock, cfg, logger)

	return &TestApp{
		App: &App{
			Storage:         store,
			Clock:           mockClock,
			Random:          mockRandom,
			IdentityService: identityService,
			Resolver:        identityService,
			Coordinator:     coordinator,
		},
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
