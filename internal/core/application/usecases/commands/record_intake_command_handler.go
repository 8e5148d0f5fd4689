package commands

import (
	"context"
	"fmt"
	"time"

	"relief/internal/core/domain/model/intake"
	"relief/internal/core/domain/model/inventory"
	"relief/internal/core/domain/model/kernel"
	"relief/internal/core/ports"
)

// RecordIntakeCommandHandler closes out a dispatched package at its
// destination warehouse.
//
// The received split must cover exactly what was dispatched, item by item.
// Reservations on the source inventories are consumed, the destination
// inventory is credited per condition bucket, the package completes, and the
// intake record is saved, all in one transaction.
type RecordIntakeCommandHandler struct {
	uowFactory IntakeUoWFactory
}

// NewRecordIntakeCommandHandler creates a handler for package receipt.
func NewRecordIntakeCommandHandler(uowFactory IntakeUoWFactory) RecordIntakeCommandHandler {
	return RecordIntakeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the intake command. Fails for packages that are not
// Dispatched and for splits that do not match the dispatched quantities.
func (h *RecordIntakeCommandHandler) Handle(ctx context.Context, cmd RecordIntakeCommand) error {
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

	packageRepo := uow.PackageRepository()
	inventoryRepo := uow.InventoryRepository()

	pkg, err := packageRepo.Get(ctx, cmd.PackageID())
	if err != nil {
		return err
	}

	// Complete up front: it rejects anything that is not Dispatched before
	// any stock moves.
	if err = pkg.Complete(); err != nil {
		return err
	}

	items, err := buildIntakeItems(cmd, pkg.DispatchedQuantities())
	if err != nil {
		return err
	}

	// One snapshot per inventory record, shared between the reservation
	// release and the destination credit in case they hit the same row.
	inventories := make(map[kernel.UUID]*inventory.Inventory)
	for _, line := range pkg.Items() {
		source, err := h.inventoryByID(ctx, inventoryRepo, inventories, line.SourceInventoryID())
		if err != nil {
			return err
		}
		if err = source.ConsumeReserved(line.Qty()); err != nil {
			return err
		}
	}

	destination, err := h.inventoryByID(ctx, inventoryRepo, inventories, pkg.ToInventoryID())
	if err != nil {
		return err
	}

	usable, defective, expired := kernel.ZeroQuantity(), kernel.ZeroQuantity(), kernel.ZeroQuantity()
	for _, item := range items {
		usable = usable.Add(item.Usable())
		defective = defective.Add(item.Defective())
		expired = expired.Add(item.Expired())
	}
	if err = destination.CreditIntake(usable, defective, expired); err != nil {
		return err
	}

	record, err := intake.NewIntake(pkg.ID(), pkg.ToInventoryID(), time.Now(), items)
	if err != nil {
		return err
	}

	for _, inv := range inventories {
		if err = inventoryRepo.Update(ctx, inv); err != nil {
			return err
		}
	}
	if err = packageRepo.Update(ctx, pkg); err != nil {
		return err
	}
	if err = uow.IntakeRepository().Add(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// buildIntakeItems validates the received lines against the dispatched
// quantities and converts them to domain intake items.
func buildIntakeItems(
	cmd RecordIntakeCommand,
	dispatched map[kernel.UUID]kernel.Quantity,
) ([]*intake.Item, error) {
	seen := make(map[kernel.UUID]struct{}, len(cmd.Lines()))
	items := make([]*intake.Item, 0, len(cmd.Lines()))

	for _, line := range cmd.Lines() {
		if _, ok := seen[line.ItemID()]; ok {
			return nil, fmt.Errorf("%w: duplicate line for item %s",
				ErrIntakeDoesNotMatchDispatch, line.ItemID())
		}
		seen[line.ItemID()] = struct{}{}

		expected, ok := dispatched[line.ItemID()]
		if !ok {
			return nil, fmt.Errorf("%w: item %s was not dispatched",
				ErrIntakeDoesNotMatchDispatch, line.ItemID())
		}
		if !line.Total().Equal(expected) {
			return nil, fmt.Errorf("%w: item %s received %s, dispatched %s",
				ErrIntakeDoesNotMatchDispatch, line.ItemID(), line.Total(), expected)
		}

		item, err := intake.NewItem(
			line.ItemID(),
			line.Usable(), line.Defective(), line.Expired(),
			line.UsableLocationID(), line.DefectiveLocationID(), line.ExpiredLocationID(),
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if len(seen) != len(dispatched) {
		return nil, fmt.Errorf("%w: %d items dispatched, %d received",
			ErrIntakeDoesNotMatchDispatch, len(dispatched), len(seen))
	}

	return items, nil
}

// inventoryByID loads an inventory record, reusing an already-loaded snapshot
// for repeated IDs.
func (h *RecordIntakeCommandHandler) inventoryByID(
	ctx context.Context,
	repo ports.InventoryRepository,
	loaded map[kernel.UUID]*inventory.Inventory,
	id kernel.UUID,
) (*inventory.Inventory, error) {
	if inv, ok := loaded[id]; ok {
		return inv, nil
	}

	inv, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	loaded[id] = inv
	return inv, nil
}
