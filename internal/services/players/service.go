package players

import (
	"context"
	"log/slog"

	"github.com/mossvale/mossvale/internal/dependencies/clock"
	"github.com/mossvale/mossvale/internal/dependencies/random"
	"github.com/mossvale/mossvale/internal/model"
	"github.com/mossvale/mossvale/internal/storage"
)

const (
	playerIDLength   = 12
	playerIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// New characters start here
const (
	startLevel     = 1
	startPositionX = 0
	startPositionY = 0
)

// Service manages durable player characters for accounts
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new players service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger.With(slog.String("component", "players")),
	}
}

// Create makes a new character for an account
func (s *Service) Create(ctx context.Context, accountID model.AccountID, name string) (*model.Player, error) {
	player := &model.Player{
		ID:        model.PlayerID("p_" + s.random.String(playerIDLength, playerIDAlphabet)),
		AccountID: accountID,
		Name:      name,
		Money:     0,
		Exp:       0,
		Level:     startLevel,
		PositionX: startPositionX,
		PositionY: startPositionY,
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player created",
		slog.String("player_id", string(player.ID)),
		slog.String("account_id", string(accountID)),
		slog.String("name", name))
	return player, nil
}

// List returns every character belonging to an account
func (s *Service) List(ctx context.Context, accountID model.AccountID) ([]*model.Player, error) {
	return s.storage.GetPlayersForAccount(ctx, accountID)
}

// Get returns one character by id
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}
