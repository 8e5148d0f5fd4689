package postgres_test

import (
	"context"
	"testing"
	"time"

	"relief/internal/adapters/out/postgres"
	"relief/internal/adapters/out/postgres/intakerepo"
	"relief/internal/adapters/out/postgres/inventoryrepo"
	"relief/internal/adapters/out/postgres/packagerepo"
	"relief/internal/adapters/out/postgres/requestrepo"
	"relief/internal/core/domain/model/inventory"
	"relief/internal/core/domain/model/kernel"
	"relief/internal/core/domain/model/reliefpkg"
	"relief/internal/core/domain/model/request"
	"relief/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that writes made through one unit
// of work are atomic: everything commits together or nothing does, including
// when a guarded update loses its version race mid-transaction.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgrescontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgrescontainer.Run(ctx,
		"postgres:15-alpine",
		postgrescontainer.WithDatabase("testdb"),
		postgrescontainer.WithUsername("testuser"),
		postgrescontainer.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(
		&inventoryrepo.InventoryDTO{},
		&requestrepo.RequestDTO{},
		&requestrepo.RequestItemDTO{},
		&packagerepo.PackageDTO{},
		&packagerepo.PackageItemDTO{},
		&intakerepo.IntakeDTO{},
		&intakerepo.IntakeItemDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE inventories, relief_requests, relief_request_items, packages, package_items, intakes, intake_items",
	).Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) qty(s string) kernel.Quantity {
	q, err := kernel.QuantityFromString(s)
	suite.Require().NoError(err)
	return q
}

func (suite *UnitOfWorkIntegrationTestSuite) seedInventory(usable string) *inventory.Inventory {
	ctx := context.Background()

	inv, err := inventory.RestoreInventory(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		suite.qty(usable), kernel.ZeroQuantity(), kernel.ZeroQuantity(), kernel.ZeroQuantity(),
		inventory.Active, kernel.NewVersion(),
	)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.InventoryRepository().Add(ctx, inv))
	suite.Require().NoError(uow.Commit(ctx))
	return inv
}

func (suite *UnitOfWorkIntegrationTestSuite) seedApprovedRequest(itemID kernel.UUID, requested string) *request.Request {
	ctx := context.Background()

	item, err := request.NewItem(itemID, suite.qty(requested))
	suite.Require().NoError(err)
	req, err := request.RestoreRequest(
		kernel.NewUUID(), kernel.NewUUID(), request.Approved,
		[]*request.Item{item}, "reviewer@example.org", nil, kernel.NewVersion(),
	)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.RequestRepository().Add(ctx, req))
	suite.Require().NoError(uow.Commit(ctx))
	return req
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()

	source := suite.seedInventory("100")
	req := suite.seedApprovedRequest(source.ItemID(), "80")

	// reload inside the transaction, move stock, save a package
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	inv, err := uow.InventoryRepository().Get(ctx, source.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(inv.Reserve(suite.qty("30")))
	suite.Require().NoError(uow.InventoryRepository().Update(ctx, inv))

	pkg, err := reliefpkg.NewPackage(kernel.NewUUID(), req.ID(), source.ID())
	suite.Require().NoError(err)
	line, err := reliefpkg.NewItem(source.ID(), source.ItemID(), suite.qty("30"))
	suite.Require().NoError(err)
	suite.Require().NoError(pkg.AddItem(line))
	suite.Require().NoError(uow.PackageRepository().Add(ctx, pkg))

	suite.Require().NoError(uow.Commit(ctx))

	// both writes are visible after commit
	verify := suite.factory.Create()
	reloadedInv, err := verify.InventoryRepository().Get(ctx, source.ID())
	suite.Require().NoError(err)
	suite.Equal("70.00", reloadedInv.Usable().String())
	suite.Equal("30.00", reloadedInv.Reserved().String())
	suite.Equal(int64(2), reloadedInv.Version().Int64())

	reloadedPkg, err := verify.PackageRepository().Get(ctx, pkg.ID())
	suite.Require().NoError(err)
	suite.Equal(reliefpkg.Pending, reloadedPkg.Status())
	suite.Len(reloadedPkg.Items(), 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsEveryWrite() {
	ctx := context.Background()

	source := suite.seedInventory("100")
	req := suite.seedApprovedRequest(source.ItemID(), "80")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	inv, err := uow.InventoryRepository().Get(ctx, source.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(inv.Reserve(suite.qty("30")))
	suite.Require().NoError(uow.InventoryRepository().Update(ctx, inv))

	pkg, err := reliefpkg.NewPackage(kernel.NewUUID(), req.ID(), source.ID())
	suite.Require().NoError(err)
	line, err := reliefpkg.NewItem(source.ID(), source.ItemID(), suite.qty("30"))
	suite.Require().NoError(err)
	suite.Require().NoError(pkg.AddItem(line))
	suite.Require().NoError(uow.PackageRepository().Add(ctx, pkg))

	suite.Require().NoError(uow.Rollback(ctx))

	// nothing from the transaction is visible
	verify := suite.factory.Create()
	reloadedInv, err := verify.InventoryRepository().Get(ctx, source.ID())
	suite.Require().NoError(err)
	suite.Equal("100.00", reloadedInv.Usable().String())
	suite.Equal("0.00", reloadedInv.Reserved().String())
	suite.Equal(int64(1), reloadedInv.Version().Int64())

	_, err = verify.PackageRepository().Get(ctx, pkg.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestStaleUpdateMidTransaction_RollbackLeavesNoPartialState() {
	ctx := context.Background()

	source := suite.seedInventory("100")
	req := suite.seedApprovedRequest(source.ItemID(), "80")

	// a competing writer bumps the request item row first
	competitor := suite.factory.Create()
	suite.Require().NoError(competitor.Begin(ctx))
	competitorReq, err := competitor.RequestRepository().Get(ctx, req.ID())
	suite.Require().NoError(err)
	competitorItem, err := competitorReq.Item(source.ItemID())
	suite.Require().NoError(err)
	suite.Require().NoError(competitorItem.Issue(suite.qty("5")))
	suite.Require().NoError(competitor.RequestRepository().Update(ctx, competitorReq))
	suite.Require().NoError(competitor.Commit(ctx))

	// the slower workflow loaded the request before that commit
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	inv, err := uow.InventoryRepository().Get(ctx, source.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(inv.Reserve(suite.qty("30")))
	suite.Require().NoError(uow.InventoryRepository().Update(ctx, inv))

	staleReq, err := request.RestoreRequest(
		req.ID(), req.AgencyID(), request.PartiallyFulfilled,
		req.Items(), req.ReviewedBy(), req.ReviewedAt(), req.Version(),
	)
	suite.Require().NoError(err)

	err = uow.RequestRepository().Update(ctx, staleReq)
	suite.Require().ErrorIs(err, errs.ErrStaleVersion)

	suite.Require().NoError(uow.Rollback(ctx))

	// the inventory write made before the conflict was rolled back with it
	verify := suite.factory.Create()
	reloadedInv, err := verify.InventoryRepository().Get(ctx, source.ID())
	suite.Require().NoError(err)
	suite.Equal("100.00", reloadedInv.Usable().String())
	suite.Equal("0.00", reloadedInv.Reserved().String())

	reloadedReq, err := verify.RequestRepository().Get(ctx, req.ID())
	suite.Require().NoError(err)
	reloadedItem, err := reloadedReq.Item(source.ItemID())
	suite.Require().NoError(err)
	suite.Equal("5.00", reloadedItem.Issued().String(), "only the competitor's issue survives")
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
