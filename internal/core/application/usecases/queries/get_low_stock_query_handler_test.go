package queries_test

import (
	"context"
	"testing"
	"time"

	"relief/internal/adapters/out/postgres/inventoryrepo"
	"relief/internal/core/application/usecases/queries"
	"relief/internal/core/domain/model/inventory"
	"relief/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetLowStockQueryHandlerTestSuite struct {
	suite.Suite
	container     *postgres.PostgresContainer
	db            *gorm.DB
	handler       queries.GetLowStockQueryHandler
	inventoryRepo *inventoryrepo.GormInventoryRepository
}

func (suite *GetLowStockQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&inventoryrepo.InventoryDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetLowStockQueryHandler(db)
	suite.inventoryRepo = inventoryrepo.NewGormInventoryRepository(db, &mockAggregateTracker{})
}

func (suite *GetLowStockQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetLowStockQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE inventories").Error
	suite.Require().NoError(err)
}

func (suite *GetLowStockQueryHandlerTestSuite) qty(s string) kernel.Quantity {
	q, err := kernel.QuantityFromString(s)
	suite.Require().NoError(err)
	return q
}

func (suite *GetLowStockQueryHandlerTestSuite) addInventory(usable string, status inventory.Status) *inventory.Inventory {
	ctx := context.Background()

	inv, err := inventory.RestoreInventory(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		suite.qty(usable), kernel.ZeroQuantity(), kernel.ZeroQuantity(), kernel.ZeroQuantity(),
		status, kernel.NewVersion(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.inventoryRepo.Add(ctx, inv))
	return inv
}

func (suite *GetLowStockQueryHandlerTestSuite) lowStockQuery(threshold string) queries.GetLowStockQuery {
	query, err := queries.NewGetLowStockQuery(suite.qty(threshold))
	suite.Require().NoError(err)
	return query
}

func (suite *GetLowStockQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	result, err := suite.handler.Handle(context.Background(), suite.lowStockQuery("25"))

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetLowStockQueryHandlerTestSuite) TestHandle_ReturnsOnlyRecordsBelowThreshold() {
	low := suite.addInventory("10", inventory.Active)
	suite.addInventory("100", inventory.Active)

	result, err := suite.handler.Handle(context.Background(), suite.lowStockQuery("25"))

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].InventoryID.IsEqual(low.ID()))
	suite.True(result[0].WarehouseID.IsEqual(low.WarehouseID()))
	suite.True(result[0].ItemID.IsEqual(low.ItemID()))
	suite.Equal("10.00", result[0].Usable.String())
}

func (suite *GetLowStockQueryHandlerTestSuite) TestHandle_RecordAtThresholdIsNotReported() {
	suite.addInventory("25", inventory.Active)

	result, err := suite.handler.Handle(context.Background(), suite.lowStockQuery("25"))

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetLowStockQueryHandlerTestSuite) TestHandle_SkipsInactiveRecords() {
	suite.addInventory("5", inventory.Inactive)
	active := suite.addInventory("5", inventory.Active)

	result, err := suite.handler.Handle(context.Background(), suite.lowStockQuery("25"))

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].InventoryID.IsEqual(active.ID()))
}

func (suite *GetLowStockQueryHandlerTestSuite) TestHandle_EmptiestRecordsComeFirst() {
	suite.addInventory("20", inventory.Active)
	suite.addInventory("5", inventory.Active)
	suite.addInventory("12.50", inventory.Active)

	result, err := suite.handler.Handle(context.Background(), suite.lowStockQuery("25"))

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("5.00", result[0].Usable.String())
	suite.Equal("12.50", result[1].Usable.String())
	suite.Equal("20.00", result[2].Usable.String())
}

func (suite *GetLowStockQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetLowStockQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, queries.ErrGetLowStockQueryIsNotConstructed)
}

func TestGetLowStockQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetLowStockQueryHandlerTestSuite))
}
