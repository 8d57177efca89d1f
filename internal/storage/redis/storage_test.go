package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mossvale/mossvale/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Account tests

func (s *StorageSuite) TestSaveAndGetAccount() {
	account := &model.Account{
		ID:           "acc_1",
		Username:     "ari",
		PasswordHash: "hash123",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}

	err := s.storage.SaveAccount(s.ctx, account)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAccount(s.ctx, "acc_1")
	s.Require().NoError(err)
	s.Equal(account.Username, retrieved.Username)
	s.Equal(account.PasswordHash, retrieved.PasswordHash)
}

func (s *StorageSuite) TestGetAccountNotFound() {
	_, err := s.storage.GetAccount(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *StorageSuite) TestGetAccountByUsername() {
	account := &model.Account{ID: "acc_1", Username: "ari"}
	s.Require().NoError(s.storage.SaveAccount(s.ctx, account))

	retrieved, err := s.storage.GetAccountByUsername(s.ctx, "ari")
	s.Require().NoError(err)
	s.Equal(account.ID, retrieved.ID)

	_, err = s.storage.GetAccountByUsername(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:        "p_1",
		AccountID: "acc_1",
		Name:      "Ari",
		Money:     25,
		Level:     3,
		PositionX: 100,
		PositionY: 200,
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "p_1")
	s.Require().NoError(err)
	s.Equal(player.Name, retrieved.Name)
	s.Equal(player.Money, retrieved.Money)
	s.Equal(player.PositionX, retrieved.PositionX)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayersForAccount() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "p_1", AccountID: "acc_1", Name: "Ari"}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "p_2", AccountID: "acc_1", Name: "Bec"}))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "p_3", AccountID: "acc_2", Name: "Cam"}))

	players, err := s.storage.GetPlayersForAccount(s.ctx, "acc_1")
	s.Require().NoError(err)
	s.Len(players, 2)

	players, err = s.storage.GetPlayersForAccount(s.ctx, "acc_3")
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StorageSuite) TestUpdatePlayerAppliesPartialUpdate() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{
		ID:    "p_1",
		Name:  "Ari",
		Money: 10,
		Level: 2,
	}))

	money := 99
	y := 480.0
	err := s.storage.UpdatePlayer(s.ctx, "p_1", model.PlayerUpdate{
		Money:     &money,
		PositionY: &y,
	})
	s.Require().NoError(err)

	player, err := s.storage.GetPlayer(s.ctx, "p_1")
	s.Require().NoError(err)
	s.Equal(99, player.Money)
	s.Equal(480.0, player.PositionY)
	s.Equal("Ari", player.Name)
	s.Equal(2, player.Level)
}

func (s *StorageSuite) TestUpdatePlayerNotFound() {
	money := 1
	err := s.storage.UpdatePlayer(s.ctx, "nonexistent", model.PlayerUpdate{Money: &money})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{ID: "p_1", AccountID: "acc_1", Name: "Ari"}))
	s.Require().NoError(s.storage.IncrementInventory(s.ctx, "p_1", 1, 3))

	err := s.storage.DeletePlayer(s.ctx, "p_1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "p_1")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	entries, err := s.storage.GetInventory(s.ctx, "p_1")
	s.Require().NoError(err)
	s.Empty(entries)

	players, err := s.storage.GetPlayersForAccount(s.ctx, "acc_1")
	s.Require().NoError(err)
	s.Empty(players)
}

// Inventory tests

func (s *StorageSuite) TestIncrementInventoryUsesHashIncrement() {
	s.Require().NoError(s.storage.IncrementInventory(s.ctx, "p_1", 1, 1))
	s.Require().NoError(s.storage.IncrementInventory(s.ctx, "p_1", 1, 2))
	s.Require().NoError(s.storage.IncrementInventory(s.ctx, "p_1", 2, 5))

	entries, err := s.storage.GetInventory(s.ctx, "p_1")
	s.Require().NoError(err)
	s.Require().Len(entries, 2)

	byDef := map[model.ItemDefID]int{}
	for _, e := range entries {
		byDef[e.ItemDefID] = e.Quantity
	}
	s.Equal(3, byDef[1])
	s.Equal(5, byDef[2])

	// The backing structure is one hash per player
	s.Equal("3", s.mini.HGet("mossvale:inventory:p_1", "1"))
}

func (s *StorageSuite) TestGetInventoryEmpty() {
	entries, err := s.storage.GetInventory(s.ctx, "p_1")
	s.Require().NoError(err)
	s.Empty(entries)
}
