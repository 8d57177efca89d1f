package world

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/mossvale/mossvale/internal/model"
	"github.com/mossvale/mossvale/internal/services/catalog"
)

// Pool is the registry of item instances currently placed in the world.
// All mutation goes through its mutex; an instance id removed from the
// pool is never reinserted.
type Pool struct {
	logger *slog.Logger

	mu    sync.Mutex
	items map[model.ItemInstanceID]model.ItemInstance
}

// NewPool creates an empty world item pool
func NewPool(logger *slog.Logger) *Pool {
	return &Pool{
		logger: logger.With(slog.String("component", "world")),
		items:  make(map[model.ItemInstanceID]model.ItemInstance),
	}
}

// LoadFromCatalog places one instance per catalog entry at the entry's
// spawn coordinates. Instance ids are deterministic so clients reconnecting
// to a restarted server see the same identifiers.
func (p *Pool) LoadFromCatalog(cat *catalog.Service) error {
	if !cat.IsLoaded() {
		return model.ErrCatalogNotLoaded
	}

	defs := cat.All()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.items = make(map[model.ItemInstanceID]model.ItemInstance, len(defs))
	for _, def := range defs {
		id := InstanceIDFor(def.ID)
		p.items[id] = model.ItemInstance{
			ID:  id,
			Def: def,
			X:   def.SpawnX,
			Y:   def.SpawnY,
		}
	}

	p.logger.Info("world item pool loaded", slog.Int("instances", len(p.items)))
	return nil
}

// InstanceIDFor returns the deterministic instance id for a catalog entry
func InstanceIDFor(defID model.ItemDefID) model.ItemInstanceID {
	return model.ItemInstanceID(fmt.Sprintf("itm_%d", defID))
}

// List returns a copy of the current pool, ordered by definition id
func (p *Pool) List() []model.ItemInstance {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]model.ItemInstance, 0, len(p.items))
	for _, item := range p.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Def.ID < items[j].Def.ID })
	return items
}

// TryRemove removes and returns the instance if it is still present.
// Check and removal happen under one lock acquisition, so for concurrent
// pickups of the same instance exactly one caller wins.
func (p *Pool) TryRemove(id model.ItemInstanceID) (model.ItemInstance, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	item, ok := p.items[id]
	if !ok {
		return model.ItemInstance{}, false
	}
	delete(p.items, id)
	return item, true
}

// Count returns the number of instances currently in the pool
func (p *Pool) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}
