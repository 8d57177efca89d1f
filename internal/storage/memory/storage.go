package memory

import (
	"context"
	"sync"

	"github.com/mossvale/mossvale/internal/model"
	"github.com/mossvale/mossvale/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	accounts      map[model.AccountID]*model.Account
	usernameIndex map[string]model.AccountID
	players       map[model.PlayerID]*model.Player
	inventories   map[model.PlayerID]map[model.ItemDefID]int
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:      make(map[model.AccountID]*model.Account),
		usernameIndex: make(map[string]model.AccountID),
		players:       make(map[model.PlayerID]*model.Player),
		inventories:   make(map[model.PlayerID]map[model.ItemDefID]int),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.ID] = account
	s.usernameIndex[account.Username] = account.ID
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return account, nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) GetPlayersForAccount(ctx context.Context, accountID model.AccountID) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var players []*model.Player
	for _, player := range s.players {
		if player.AccountID == accountID {
			players = append(players, player)
		}
	}
	return players, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, id model.PlayerID, update model.PlayerUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	update.Apply(player)
	return nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	delete(s.inventories, id)
	return nil
}

// Inventory operations

func (s *Storage) GetInventory(ctx context.Context, playerID model.PlayerID) ([]model.InventoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv := s.inventories[playerID]
	entries := make([]model.InventoryEntry, 0, len(inv))
	for defID, qty := range inv {
		entries = append(entries, model.InventoryEntry{ItemDefID: defID, Quantity: qty})
	}
	return entries, nil
}

func (s *Storage) IncrementInventory(ctx context.Context, playerID model.PlayerID, itemDefID model.ItemDefID, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.inventories[playerID]
	if !ok {
		inv = make(map[model.ItemDefID]int)
		s.inventories[playerID] = inv
	}
	inv[itemDefID] += qty
	return nil
}
