package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mossvale/mossvale/internal/model"
	"github.com/mossvale/mossvale/internal/services/catalog"
	"github.com/mossvale/mossvale/internal/storage/memory"
	"github.com/mossvale/mossvale/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	catalog *catalog.Service
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.storage = memory.New()
	s.catalog = catalog.New(logger)
	s.catalog.LoadDefinitions([]model.ItemDefinition{
		{ID: 1, Name: "Mushroom", Type: "misc", Rarity: "common"},
		{ID: 2, Name: "Healing Herb", Type: "potion", Rarity: "common"},
	})
	s.service = New(s.storage, s.catalog, logger)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestGetEmptyInventory() {
	items, err := s.service.Get(s.ctx, "p_a")
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *ServiceSuite) TestGrantThenGet() {
	s.Require().NoError(s.service.Grant(s.ctx, "p_a", 1, 1))
	s.Require().NoError(s.service.Grant(s.ctx, "p_a", 1, 2))
	s.Require().NoError(s.service.Grant(s.ctx, "p_a", 2, 1))

	items, err := s.service.Get(s.ctx, "p_a")
	s.Require().NoError(err)
	s.Require().Len(items, 2)

	s.Equal("Mushroom", items[0].Name)
	s.Equal(3, items[0].Quantity)
	s.Equal("Healing Herb", items[1].Name)
	s.Equal(1, items[1].Quantity)
}

func (s *ServiceSuite) TestGetSkipsRowsMissingFromCatalog() {
	s.Require().NoError(s.storage.IncrementInventory(s.ctx, "p_a", 1, 2))
	s.Require().NoError(s.storage.IncrementInventory(s.ctx, "p_a", 999, 5))

	items, err := s.service.Get(s.ctx, "p_a")
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal("Mushroom", items[0].Name)
}

func (s *ServiceSuite) TestInventoriesAreIsolatedPerPlayer() {
	s.Require().NoError(s.service.Grant(s.ctx, "p_a", 1, 1))

	items, err := s.service.Get(s.ctx, "p_b")
	s.Require().NoError(err)
	s.Empty(items)
}
