package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mossvale/mossvale/internal/model"
	"github.com/mossvale/mossvale/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, accountKey(account.ID), data, 0)
	pipe.Set(ctx, usernameIndexKey(account.Username), string(account.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	data, err := s.client.Get(ctx, accountKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	accountIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	return s.GetAccount(ctx, model.AccountID(accountIDStr))
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	pKey := playerKey(player.ID)
	indexKey := playersForAccountIndexKey(player.AccountID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, pKey, data, 0)
	pipe.SAdd(ctx, indexKey, pKey)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) GetPlayersForAccount(ctx context.Context, accountID model.AccountID) ([]*model.Player, error) {
	indexKey := playersForAccountIndexKey(accountID)

	playerKeys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(playerKeys) == 0 {
		return []*model.Player{}, nil
	}

	values, err := s.client.MGet(ctx, playerKeys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	return players, nil
}

func (s *Storage) UpdatePlayer(ctx context.Context, id model.PlayerID, update model.PlayerUpdate) error {
	// Read-merge-write. The single server process is the only writer for a
	// given player, so this does not race with itself.
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return err
	}

	update.Apply(player)

	data, err := json.Marshal(player)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, playerKey(id), data, 0).Err()
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, playerKey(id))
	pipe.SRem(ctx, playersForAccountIndexKey(player.AccountID), playerKey(id))
	pipe.Del(ctx, inventoryKey(id))
	_, err = pipe.Exec(ctx)
	return err
}

// Inventory operations

func (s *Storage) GetInventory(ctx context.Context, playerID model.PlayerID) ([]model.InventoryEntry, error) {
	rows, err := s.client.HGetAll(ctx, inventoryKey(playerID)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.InventoryEntry, 0, len(rows))
	for field, value := range rows {
		defID, err := strconv.Atoi(field)
		if err != nil {
			continue // Skip invalid data
		}
		qty, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		entries = append(entries, model.InventoryEntry{
			ItemDefID: model.ItemDefID(defID),
			Quantity:  qty,
		})
	}
	return entries, nil
}

func (s *Storage) IncrementInventory(ctx context.Context, playerID model.PlayerID, itemDefID model.ItemDefID, qty int) error {
	// HINCRBY gives the increment-or-insert semantics in one atomic step
	return s.client.HIncrBy(ctx, inventoryKey(playerID), strconv.Itoa(int(itemDefID)), int64(qty)).Err()
}
