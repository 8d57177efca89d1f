package storage

import (
	"context"

	"github.com/mossvale/mossvale/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Account operations
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)

	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayersForAccount(ctx context.Context, accountID model.AccountID) ([]*model.Player, error)
	// UpdatePlayer merges the non-nil fields of update into the stored
	// record, leaving everything else untouched
	UpdatePlayer(ctx context.Context, id model.PlayerID, update model.PlayerUpdate) error
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Inventory operations
	GetInventory(ctx context.Context, playerID model.PlayerID) ([]model.InventoryEntry, error)
	IncrementInventory(ctx context.Context, playerID model.PlayerID, itemDefID model.ItemDefID, qty int) error
}
