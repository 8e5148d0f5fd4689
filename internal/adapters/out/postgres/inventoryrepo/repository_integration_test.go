package inventoryrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"relief/internal/adapters/out/postgres/inventoryrepo"
	"relief/internal/core/domain/model/inventory"
	"relief/internal/core/domain/model/kernel"
	"relief/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// InventoryRepositoryIntegrationTestSuite exercises inventory persistence
// against a real PostgreSQL instance, including the guarded update that backs
// the optimistic concurrency scheme.
type InventoryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *inventoryrepo.GormInventoryRepository
	tracker    *MockAggregateTracker
}

func (suite *InventoryRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&inventoryrepo.InventoryDTO{}))
}

func (suite *InventoryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE inventories").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = inventoryrepo.NewGormInventoryRepository(suite.db, suite.tracker)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *InventoryRepositoryIntegrationTestSuite) qty(s string) kernel.Quantity {
	q, err := kernel.QuantityFromString(s)
	suite.Require().NoError(err)
	return q
}

func (suite *InventoryRepositoryIntegrationTestSuite) addInventory(usable string) *inventory.Inventory {
	ctx := context.Background()

	inv, err := inventory.RestoreInventory(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		suite.qty(usable), kernel.ZeroQuantity(), kernel.ZeroQuantity(), kernel.ZeroQuantity(),
		inventory.Active, kernel.NewVersion(),
	)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", inv.ID(), inv).Once()
	suite.Require().NoError(suite.repository.Add(ctx, inv))
	return inv
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	inv := suite.addInventory("120.50")

	retrieved, err := suite.repository.Get(ctx, inv.ID())
	suite.Require().NoError(err)

	suite.True(retrieved.ID().IsEqual(inv.ID()))
	suite.True(retrieved.WarehouseID().IsEqual(inv.WarehouseID()))
	suite.True(retrieved.ItemID().IsEqual(inv.ItemID()))
	suite.Equal("120.50", retrieved.Usable().String())
	suite.Equal("0.00", retrieved.Reserved().String())
	suite.Equal(inventory.Active, retrieved.Status())
	suite.Equal(int64(1), retrieved.Version().Int64())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestUpdate_AdvancesVersionByOne() {
	ctx := context.Background()
	inv := suite.addInventory("100")

	loaded, err := suite.repository.Get(ctx, inv.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.Reserve(suite.qty("40")))

	suite.tracker.On("TrackAggregate", loaded.ID(), loaded).Once()
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, inv.ID())
	suite.Require().NoError(err)
	suite.Equal("60.00", reloaded.Usable().String())
	suite.Equal("40.00", reloaded.Reserved().String())
	suite.Equal(int64(2), reloaded.Version().Int64())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestUpdate_StaleSnapshot_ReturnsStaleVersionError() {
	ctx := context.Background()
	inv := suite.addInventory("100")

	first, err := suite.repository.Get(ctx, inv.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, inv.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Reserve(suite.qty("10")))
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Update(ctx, first))

	// the second snapshot still carries version 1 and must lose
	suite.Require().NoError(second.Reserve(suite.qty("10")))
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrStaleVersion)

	var staleErr *errs.StaleVersionError
	suite.Require().ErrorAs(err, &staleErr)
	suite.Equal("inventory", staleErr.EntityName)
	suite.Equal(int64(1), staleErr.ExpectedVersion)

	// the losing write left no trace
	reloaded, err := suite.repository.Get(ctx, inv.ID())
	suite.Require().NoError(err)
	suite.Equal("90.00", reloaded.Usable().String())
	suite.Equal("10.00", reloaded.Reserved().String())
	suite.Equal(int64(2), reloaded.Version().Int64())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestUpdate_ConcurrentWriters_ExactlyOneWins() {
	ctx := context.Background()
	inv := suite.addInventory("100")

	const writers = 5

	// every writer works from its own copy of the same version-1 row
	snapshots := make([]*inventory.Inventory, writers)
	for i := range writers {
		snapshot, err := suite.repository.Get(ctx, inv.ID())
		suite.Require().NoError(err)
		suite.Require().NoError(snapshot.Reserve(suite.qty("10")))
		snapshots[i] = snapshot
	}

	suite.tracker.On("TrackAggregate", inv.ID(), mock.Anything).Once()

	var wg sync.WaitGroup
	results := make(chan error, writers)
	for i := range writers {
		wg.Add(1)
		go func(snapshot *inventory.Inventory) {
			defer wg.Done()
			results <- suite.repository.Update(ctx, snapshot)
		}(snapshots[i])
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			suite.Require().ErrorIs(err, errs.ErrStaleVersion)
			conflicts++
		}
	}

	suite.Equal(1, wins, "exactly one concurrent writer must win")
	suite.Equal(writers-1, conflicts)

	// the surviving row reflects a single reservation
	reloaded, err := suite.repository.Get(ctx, inv.ID())
	suite.Require().NoError(err)
	suite.Equal("90.00", reloaded.Usable().String())
	suite.Equal("10.00", reloaded.Reserved().String())
	suite.Equal(int64(2), reloaded.Version().Int64())
}

func (suite *InventoryRepositoryIntegrationTestSuite) TestGetActiveByWarehouseAndItem_SkipsInactiveRecords() {
	ctx := context.Background()

	warehouseID := kernel.NewUUID()
	itemID := kernel.NewUUID()

	inactive, err := inventory.RestoreInventory(
		kernel.NewUUID(), warehouseID, itemID,
		suite.qty("50"), kernel.ZeroQuantity(), kernel.ZeroQuantity(), kernel.ZeroQuantity(),
		inventory.Inactive, kernel.NewVersion(),
	)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", inactive.ID(), inactive).Once()
	suite.Require().NoError(suite.repository.Add(ctx, inactive))

	_, err = suite.repository.GetActiveByWarehouseAndItem(ctx, warehouseID, itemID)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	active, err := inventory.RestoreInventory(
		kernel.NewUUID(), warehouseID, itemID,
		suite.qty("25"), kernel.ZeroQuantity(), kernel.ZeroQuantity(), kernel.ZeroQuantity(),
		inventory.Active, kernel.NewVersion(),
	)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", active.ID(), active).Once()
	suite.Require().NoError(suite.repository.Add(ctx, active))

	found, err := suite.repository.GetActiveByWarehouseAndItem(ctx, warehouseID, itemID)
	suite.Require().NoError(err)
	suite.True(found.ID().IsEqual(active.ID()))
	suite.Equal("25.00", found.Usable().String())

	suite.tracker.AssertExpectations(suite.T())
}

func TestInventoryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryRepositoryIntegrationTestSuite))
}
