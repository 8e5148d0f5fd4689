package ports

import (
	"context"

	"relief/internal/core/domain/model/inventory"
	"relief/internal/core/domain/model/kernel"
)

// InventoryRepository persists Inventory aggregates.
//
// Update is a guarded write: it is conditioned on the aggregate's version and
// fails with errs.ErrStaleVersion when another writer committed first. Loaded
// aggregates are snapshots; staleness is detected at commit, never at read.
type InventoryRepository interface {
	// Add saves a new inventory record at version 1.
	Add(ctx context.Context, aggregate *inventory.Inventory) error

	// Update saves a modified inventory record via a guarded update.
	Update(ctx context.Context, aggregate *inventory.Inventory) error

	// Get retrieves an inventory record by ID.
	Get(ctx context.Context, id kernel.UUID) (*inventory.Inventory, error)

	// GetActiveByWarehouseAndItem resolves the active allocation source for a
	// warehouse/item pair. Returns errs.ErrObjectNotFound if the item is not
	// stocked there.
	GetActiveByWarehouseAndItem(ctx context.Context, warehouseID, itemID kernel.UUID) (*inventory.Inventory, error)

	// GetFirstActiveAtWarehouse resolves an active inventory record at the
	// warehouse to serve as a package's destination placeholder.
	GetFirstActiveAtWarehouse(ctx context.Context, warehouseID kernel.UUID) (*inventory.Inventory, error)
}
