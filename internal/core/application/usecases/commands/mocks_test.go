package commands_test

import (
	"context"
	"testing"

	"relief/internal/core/application/usecases/commands"
	"relief/internal/core/domain/model/intake"
	"relief/internal/core/domain/model/inventory"
	"relief/internal/core/domain/model/kernel"
	"relief/internal/core/domain/model/reliefpkg"
	"relief/internal/core/domain/model/request"
	"relief/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Add(ctx context.Context, inv *inventory.Inventory) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInventoryRepository) Update(ctx context.Context, inv *inventory.Inventory) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInventoryRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Inventory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) GetActiveByWarehouseAndItem(
	ctx context.Context, warehouseID, itemID kernel.UUID,
) (*inventory.Inventory, error) {
	args := m.Called(ctx, warehouseID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) GetFirstActiveAtWarehouse(
	ctx context.Context, warehouseID kernel.UUID,
) (*inventory.Inventory, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Inventory), args.Error(1)
}

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Add(ctx context.Context, req *request.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, req *request.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

type MockPackageRepository struct{ mock.Mock }

func (m *MockPackageRepository) Add(ctx context.Context, pkg *reliefpkg.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *MockPackageRepository) Update(ctx context.Context, pkg *reliefpkg.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *MockPackageRepository) Get(ctx context.Context, id kernel.UUID) (*reliefpkg.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reliefpkg.Package), args.Error(1)
}

type MockIntakeRepository struct{ mock.Mock }

func (m *MockIntakeRepository) Add(ctx context.Context, record *intake.Intake) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockIntakeRepository) GetByPackage(ctx context.Context, packageID kernel.UUID) (*intake.Intake, error) {
	args := m.Called(ctx, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intake.Intake), args.Error(1)
}

// MockUoW satisfies every unit of work interface in the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

func (m *MockUoW) RequestRepository() ports.RequestRepository {
	args := m.Called()
	return args.Get(0).(ports.RequestRepository)
}

func (m *MockUoW) PackageRepository() ports.PackageRepository {
	args := m.Called()
	return args.Get(0).(ports.PackageRepository)
}

func (m *MockUoW) IntakeRepository() ports.IntakeRepository {
	args := m.Called()
	return args.Get(0).(ports.IntakeRepository)
}

type MockFulfillmentUoWFactory struct{ mock.Mock }

func (m *MockFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	args := m.Called()
	return args.Get(0).(commands.FulfillmentUoW)
}

type MockPackageUoWFactory struct{ mock.Mock }

func (m *MockPackageUoWFactory) Create() commands.PackageUoW {
	args := m.Called()
	return args.Get(0).(commands.PackageUoW)
}

type MockIntakeUoWFactory struct{ mock.Mock }

func (m *MockIntakeUoWFactory) Create() commands.IntakeUoW {
	args := m.Called()
	return args.Get(0).(commands.IntakeUoW)
}

type MockReviewUoWFactory struct{ mock.Mock }

func (m *MockReviewUoWFactory) Create() commands.ReviewUoW {
	args := m.Called()
	return args.Get(0).(commands.ReviewUoW)
}

func qty(t *testing.T, s string) kernel.Quantity {
	t.Helper()
	q, err := kernel.QuantityFromString(s)
	require.NoError(t, err)
	return q
}

func restoreInventory(t *testing.T, warehouseID, itemID kernel.UUID, usable, reserved string) *inventory.Inventory {
	t.Helper()
	inv, err := inventory.RestoreInventory(
		kernel.NewUUID(), warehouseID, itemID,
		qty(t, usable), qty(t, reserved), kernel.ZeroQuantity(), kernel.ZeroQuantity(),
		inventory.Active, kernel.NewVersion(),
	)
	require.NoError(t, err)
	return inv
}

func restoreApprovedRequest(t *testing.T, items []*request.Item) *request.Request {
	t.Helper()
	req, err := request.RestoreRequest(
		kernel.NewUUID(), kernel.NewUUID(), request.Approved,
		items, "reviewer@example.org", nil, kernel.NewVersion(),
	)
	require.NoError(t, err)
	return req
}

func requestItem(t *testing.T, itemID kernel.UUID, requested string) *request.Item {
	t.Helper()
	item, err := request.NewItem(itemID, qty(t, requested))
	require.NoError(t, err)
	return item
}
