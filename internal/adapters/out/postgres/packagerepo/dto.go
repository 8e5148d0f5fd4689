// Package packagerepo provides data transfer objects and mapping functions
// for relief package persistence. Lines are immutable once written; only the
// header status moves, through the guarded update.
package packagerepo

import (
	"time"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/core/domain/model/reliefpkg"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PackageDTO represents the database structure for the package header.
type PackageDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID     uuid.UUID `gorm:"type:uuid;index"`
	ToInventoryID uuid.UUID `gorm:"type:uuid"`

	Status       int `gorm:"index"`
	DispatchedAt *time.Time

	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for package headers.
func (PackageDTO) TableName() string {
	return "packages"
}

// PackageItemDTO represents one allocation line of a package.
type PackageItemDTO struct {
	PackageID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SourceInventoryID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID            uuid.UUID `gorm:"type:uuid;primaryKey"`

	Qty decimal.Decimal `gorm:"type:decimal(12,2)"`

	CreatedAt time.Time
}

// TableName specifies the database table name for package lines.
func (PackageItemDTO) TableName() string {
	return "package_items"
}

// fromDomain converts a package aggregate to its header and line rows.
func fromDomain(aggregate *reliefpkg.Package) (PackageDTO, []PackageItemDTO) {
	header := PackageDTO{
		ID:            aggregate.ID().Bytes(),
		RequestID:     aggregate.RequestID().Bytes(),
		ToInventoryID: aggregate.ToInventoryID().Bytes(),
		Status:        int(aggregate.Status()),
		DispatchedAt:  aggregate.DispatchedAt(),
		Version:       aggregate.Version().Int64(),
	}

	items := make([]PackageItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, PackageItemDTO{
			PackageID:         aggregate.ID().Bytes(),
			SourceInventoryID: item.SourceInventoryID().Bytes(),
			ItemID:            item.ItemID().Bytes(),
			Qty:               item.Qty().Decimal(),
		})
	}

	return header, items
}

// toDomain converts header and line rows to a package aggregate.
func toDomain(header PackageDTO, itemDTOs []PackageItemDTO) (*reliefpkg.Package, error) {
	id, err := kernel.UUIDFromBytes(header.ID[:])
	if err != nil {
		return nil, err
	}
	requestID, err := kernel.UUIDFromBytes(header.RequestID[:])
	if err != nil {
		return nil, err
	}
	toInventoryID, err := kernel.UUIDFromBytes(header.ToInventoryID[:])
	if err != nil {
		return nil, err
	}
	version, err := kernel.RestoreVersion(header.Version)
	if err != nil {
		return nil, err
	}

	items := make([]*reliefpkg.Item, 0, len(itemDTOs))
	for _, dto := range itemDTOs {
		item, itemErr := itemToDomain(dto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return reliefpkg.RestorePackage(
		id, requestID, toInventoryID,
		reliefpkg.Status(header.Status),
		header.DispatchedAt,
		items,
		version,
	)
}

func itemToDomain(dto PackageItemDTO) (*reliefpkg.Item, error) {
	sourceInventoryID, err := kernel.UUIDFromBytes(dto.SourceInventoryID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}
	qty, err := kernel.NewQuantity(dto.Qty)
	if err != nil {
		return nil, err
	}

	return reliefpkg.NewItem(sourceInventoryID, itemID, qty)
}
