package inventory

import (
	"context"
	"log/slog"
	"sort"

	"github.com/mossvale/mossvale/internal/model"
	"github.com/mossvale/mossvale/internal/services/catalog"
	"github.com/mossvale/mossvale/internal/storage"
)

// Service reads and writes durable per-player inventories.
// The stored rows are (item definition id, quantity) pairs; reads are
// materialized against the catalog before they reach a client.
type Service struct {
	storage storage.Storage
	catalog *catalog.Service
	logger  *slog.Logger
}

// New creates a new inventory service
func New(storage storage.Storage, catalog *catalog.Service, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		catalog: catalog,
		logger:  logger.With(slog.String("component", "inventory")),
	}
}

// Get returns a player's inventory joined against the catalog, ordered by
// definition id. Rows whose definition id is absent from the catalog are
// skipped with a warning rather than failing the whole read.
func (s *Service) Get(ctx context.Context, playerID model.PlayerID) ([]model.InventoryItem, error) {
	entries, err := s.storage.GetInventory(ctx, playerID)
	if err != nil {
		return nil, err
	}

	items := make([]model.InventoryItem, 0, len(entries))
	for _, entry := range entries {
		def, err := s.catalog.Get(entry.ItemDefID)
		if err != nil {
			s.logger.Warn("inventory row references unknown item",
				slog.String("player_id", string(playerID)),
				slog.Int("item_def_id", int(entry.ItemDefID)))
			continue
		}
		items = append(items, model.InventoryItem{
			ItemDefinition: def,
			Quantity:       entry.Quantity,
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// Grant adds qty of an item to a player's inventory, inserting the row if
// it does not exist yet
func (s *Service) Grant(ctx context.Context, playerID model.PlayerID, itemDefID model.ItemDefID, qty int) error {
	return s.storage.IncrementInventory(ctx, playerID, itemDefID, qty)
}
