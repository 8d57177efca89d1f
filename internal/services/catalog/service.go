package catalog

import (
	"encoding/json"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/mossvale/mossvale/internal/model"
)

// Service holds the static item catalog.
// Definitions are loaded once at startup and never mutated afterwards.
type Service struct {
	logger *slog.Logger

	mu     sync.RWMutex
	defs   map[model.ItemDefID]model.ItemDefinition
	loaded bool
}

// New creates a new catalog service
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger.With(slog.String("component", "catalog")),
		defs:   make(map[model.ItemDefID]model.ItemDefinition),
	}
}

// LoadFromFile loads item definitions from a JSON file (an array of entries)
func (s *Service) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var defs []model.ItemDefinition
	if err := json.Unmarshal(data, &defs); err != nil {
		return err
	}

	s.LoadDefinitions(defs)
	s.logger.Info("item catalog loaded",
		slog.String("path", path),
		slog.Int("entries", len(defs)))
	return nil
}

// LoadDefinitions directly loads a slice of definitions (useful for testing)
func (s *Service) LoadDefinitions(defs []model.ItemDefinition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.defs = make(map[model.ItemDefID]model.ItemDefinition, len(defs))
	for _, def := range defs {
		s.defs[def.ID] = def
	}
	s.loaded = true
}

// Get returns the definition for an id
func (s *Service) Get(id model.ItemDefID) (model.ItemDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return model.ItemDefinition{}, model.ErrCatalogNotLoaded
	}
	def, ok := s.defs[id]
	if !ok {
		return model.ItemDefinition{}, model.ErrItemNotFound
	}
	return def, nil
}

// All returns every definition, ordered by id
func (s *Service) All() []model.ItemDefinition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	defs := make([]model.ItemDefinition, 0, len(s.defs))
	for _, def := range s.defs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// IsLoaded returns whether the catalog has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Count returns the number of definitions in the catalog
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.defs)
}
