package factory

import (
	"time"

	"github.com/mossvale/mossvale/internal/dependencies/mocks"
	"github.com/mossvale/mossvale/internal/model"
	"github.com/mossvale/mossvale/internal/services/auth"
	"github.com/mossvale/mossvale/internal/storage/memory"
	"github.com/mossvale/mossvale/internal/testutil"
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
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, auth.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestCatalog loads a small item catalog and spawns the world pool from it
func (t *TestApp) LoadTestCatalog() error {
	defs := []model.ItemDefinition{
		{
			ID:          1,
			Name:        "Mushroom",
			Description: "A restorative forest mushroom",
			Type:        "potion",
			Rarity:      "common",
			Stats:       model.ItemStats{Healing: 5},
			Usable:      true,
			SpawnX:      200,
			SpawnY:      150,
		},
		{
			ID:          2,
			Name:        "Rusty Sword",
			Description: "It has seen better days",
			Type:        "weapon",
			Rarity:      "common",
			Stats:       model.ItemStats{Attack: 3},
			Droppable:   true,
			SpawnX:      420,
			SpawnY:      310,
		},
		{
			ID:          3,
			Name:        "Leather Cap",
			Description: "Basic head protection",
			Type:        "armor",
			Rarity:      "common",
			Stats:       model.ItemStats{Defense: 2},
			Droppable:   true,
			SpawnX:      90,
			SpawnY:      480,
		},
	}
	t.CatalogService.LoadDefinitions(defs)
	return t.WorldPool.LoadFromCatalog(t.CatalogService)
}
