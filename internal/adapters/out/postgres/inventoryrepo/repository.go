package inventoryrepo

import (
	"context"
	"errors"

	"relief/internal/adapters/out/postgres/versioning"
	"relief/internal/core/domain/model/inventory"
	"relief/internal/core/domain/model/kernel"
	"relief/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryRepository {
	return &GormInventoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new inventory record to the database.
func (r *GormInventoryRepository) Add(ctx context.Context, aggregate *inventory.Inventory) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing inventory record through the guarded update.
// Returns errs.ErrStaleVersion when a concurrent writer committed first.
func (r *GormInventoryRepository) Update(ctx context.Context, aggregate *inventory.Inventory) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := versioning.GuardedUpdate(
		ctx, r.db, &InventoryDTO{},
		"inventory", aggregate.ID().String(),
		map[string]any{"id": dto.ID},
		aggregate.Version(),
		map[string]any{
			"usable_qty":    dto.UsableQty,
			"reserved_qty":  dto.ReservedQty,
			"defective_qty": dto.DefectiveQty,
			"expired_qty":   dto.ExpiredQty,
			"status":        dto.Status,
		},
	)
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an inventory record by ID.
func (r *GormInventoryRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Inventory, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto InventoryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByWarehouseAndItem retrieves the active inventory record for a
// warehouse/item pair.
func (r *GormInventoryRepository) GetActiveByWarehouseAndItem(
	ctx context.Context, warehouseID, itemID kernel.UUID,
) (*inventory.Inventory, error) {
	if err := errors.Join(warehouseID.Validate(), itemID.Validate()); err != nil {
		return nil, err
	}

	var dto InventoryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "warehouse_id = ? AND item_id = ? AND status = ?",
			warehouseID.Bytes(), itemID.Bytes(), int(inventory.Active)).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory",
				warehouseID.String()+"/"+itemID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetFirstActiveAtWarehouse retrieves an active inventory record at the
// warehouse, ordered by ID for a stable pick.
func (r *GormInventoryRepository) GetFirstActiveAtWarehouse(
	ctx context.Context, warehouseID kernel.UUID,
) (*inventory.Inventory, error) {
	if err := warehouseID.Validate(); err != nil {
		return nil, err
	}

	var dto InventoryDTO
	err := r.db.WithContext(ctx).
		Order("id").
		First(&dto, "warehouse_id = ? AND status = ?", warehouseID.Bytes(), int(inventory.Active)).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory", warehouseID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
