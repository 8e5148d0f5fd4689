// Package inventoryrepo provides data transfer objects and mapping functions
// for inventory persistence. It implements the repository pattern for the
// inventory aggregate, converting between domain entities and database rows.
package inventoryrepo

import (
	"time"

	"relief/internal/core/domain/model/inventory"
	"relief/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryDTO represents the database structure for persisting inventory
// aggregates. One row tracks one warehouse's stock of one item, split across
// condition buckets, with the version column backing the guarded update.
type InventoryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	WarehouseID uuid.UUID `gorm:"type:uuid;index:idx_inventories_warehouse_item"`
	ItemID      uuid.UUID `gorm:"type:uuid;index:idx_inventories_warehouse_item"`

	UsableQty    decimal.Decimal `gorm:"type:decimal(12,2)"`
	ReservedQty  decimal.Decimal `gorm:"type:decimal(12,2)"`
	DefectiveQty decimal.Decimal `gorm:"type:decimal(12,2)"`
	ExpiredQty   decimal.Decimal `gorm:"type:decimal(12,2)"`

	Status  int
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for inventory records.
func (InventoryDTO) TableName() string {
	return "inventories"
}

// fromDomain converts an inventory aggregate to its database representation.
func fromDomain(aggregate *inventory.Inventory) InventoryDTO {
	return InventoryDTO{
		ID:           aggregate.ID().Bytes(),
		WarehouseID:  aggregate.WarehouseID().Bytes(),
		ItemID:       aggregate.ItemID().Bytes(),
		UsableQty:    aggregate.Usable().Decimal(),
		ReservedQty:  aggregate.Reserved().Decimal(),
		DefectiveQty: aggregate.Defective().Decimal(),
		ExpiredQty:   aggregate.Expired().Decimal(),
		Status:       int(aggregate.Status()),
		Version:      aggregate.Version().Int64(),
	}
}

// toDomain converts a database row to an inventory aggregate.
func toDomain(dto InventoryDTO) (*inventory.Inventory, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}

	usable, err := kernel.NewQuantity(dto.UsableQty)
	if err != nil {
		return nil, err
	}
	reserved, err := kernel.NewQuantity(dto.ReservedQty)
	if err != nil {
		return nil, err
	}
	defective, err := kernel.NewQuantity(dto.DefectiveQty)
	if err != nil {
		return nil, err
	}
	expired, err := kernel.NewQuantity(dto.ExpiredQty)
	if err != nil {
		return nil, err
	}

	version, err := kernel.RestoreVersion(dto.Version)
	if err != nil {
		return nil, err
	}

	return inventory.RestoreInventory(
		id, warehouseID, itemID,
		usable, reserved, defective, expired,
		inventory.Status(dto.Status),
		version,
	)
}
