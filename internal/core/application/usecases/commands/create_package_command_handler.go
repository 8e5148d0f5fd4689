package commands

import (
	"context"
	"errors"
	"fmt"

	"relief/internal/core/domain/model/inventory"
	"relief/internal/core/domain/model/kernel"
	"relief/internal/core/domain/model/reliefpkg"
	"relief/internal/core/ports"
	"relief/internal/pkg/errs"
)

var (
	// ErrNoActiveInventory is returned when the destination warehouse has no
	// active inventory record to receive the package.
	ErrNoActiveInventory = errors.New("warehouse has no active inventory record")

	// ErrItemNotStocked is returned when the source warehouse has no active
	// inventory record for a requested item.
	ErrItemNotStocked = errors.New("item is not stocked at warehouse")
)

// CreatePackageCommandHandler assembles a pending package against an approved
// relief request.
//
// Every line is validated against the request's remaining quantities and
// reserved on the source warehouse's inventory before the package is saved.
// Any failed line aborts the whole command: the transaction rolls back and no
// stock moves, no quantities are issued, and no package exists.
type CreatePackageCommandHandler struct {
	uowFactory FulfillmentUoWFactory
}

// NewCreatePackageCommandHandler creates a handler for package assembly.
func NewCreatePackageCommandHandler(uowFactory FulfillmentUoWFactory) CreatePackageCommandHandler {
	return CreatePackageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the package creation command.
//
// A line set where every quantity is zero is rejected as an empty package; a
// zero line mixed with positive ones fails the whole batch. Inventory
// snapshots are shared across lines, so two lines pulling the same item drain
// one in-memory balance and cannot double-spend it.
func (h *CreatePackageCommandHandler) Handle(ctx context.Context, cmd CreatePackageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.RequestRepository()
	inventoryRepo := uow.InventoryRepository()

	req, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}
	if err = req.ValidateOpenForFulfillment(); err != nil {
		return err
	}
	if err = validateLineQuantities(cmd.Lines()); err != nil {
		return err
	}

	destination, err := inventoryRepo.GetFirstActiveAtWarehouse(ctx, cmd.ToWarehouseID())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return fmt.Errorf("%w: warehouse %s", ErrNoActiveInventory, cmd.ToWarehouseID())
		}
		return err
	}

	pkg, err := reliefpkg.NewPackage(cmd.PackageID(), req.ID(), destination.ID())
	if err != nil {
		return err
	}

	sources := make(map[kernel.UUID]*inventory.Inventory)
	for _, line := range cmd.Lines() {
		requestItem, err := req.Item(line.ItemID())
		if err != nil {
			return err
		}
		if err = requestItem.Issue(line.Qty()); err != nil {
			return err
		}

		source, err := h.sourceInventory(ctx, inventoryRepo, sources, cmd.FromWarehouseID(), line.ItemID())
		if err != nil {
			return err
		}
		if err = source.Reserve(line.Qty()); err != nil {
			return err
		}

		packageItem, err := reliefpkg.NewItem(source.ID(), line.ItemID(), line.Qty())
		if err != nil {
			return err
		}
		if err = pkg.AddItem(packageItem); err != nil {
			return err
		}
	}

	if err = pkg.ValidateNotEmpty(); err != nil {
		return err
	}
	if err = req.RecordFulfillment(); err != nil {
		return err
	}

	for _, source := range sources {
		if err = inventoryRepo.Update(ctx, source); err != nil {
			return err
		}
	}
	if err = requestRepo.Update(ctx, req); err != nil {
		return err
	}
	if err = uow.PackageRepository().Add(ctx, pkg); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// validateLineQuantities rejects line sets that cannot produce a valid
// package. A set where every quantity is zero would assemble an empty package
// and fails as such; once any line is positive, every line must be.
func validateLineQuantities(lines []PackageLine) error {
	hasPositive := false
	for _, line := range lines {
		if line.Qty().IsPositive() {
			hasPositive = true
			break
		}
	}
	if !hasPositive {
		return reliefpkg.ErrEmptyPackage
	}

	for _, line := range lines {
		if !line.Qty().IsPositive() {
			return fmt.Errorf("%w: item %s", ErrLineQuantityIsNotPositive, line.ItemID())
		}
	}
	return nil
}

// sourceInventory resolves the active inventory record for an item at the
// source warehouse, reusing an already-loaded snapshot when two lines name
// the same item.
func (h *CreatePackageCommandHandler) sourceInventory(
	ctx context.Context,
	repo ports.InventoryRepository,
	loaded map[kernel.UUID]*inventory.Inventory,
	warehouseID, itemID kernel.UUID,
) (*inventory.Inventory, error) {
	if source, ok := loaded[itemID]; ok {
		return source, nil
	}

	source, err := repo.GetActiveByWarehouseAndItem(ctx, warehouseID, itemID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: item %s at warehouse %s", ErrItemNotStocked, itemID, warehouseID)
		}
		return nil, err
	}

	loaded[itemID] = source
	return source, nil
}
