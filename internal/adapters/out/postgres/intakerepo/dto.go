// Package intakerepo provides data transfer objects and mapping functions
// for intake persistence. Intakes are append-only receipts; they are written
// once when a package is received and never updated.
package intakerepo

import (
	"time"

	"relief/internal/core/domain/model/intake"
	"relief/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IntakeDTO represents the database structure for the intake header,
// keyed by the package it closes out.
type IntakeDTO struct {
	PackageID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	InventoryID uuid.UUID `gorm:"type:uuid;index"`
	ReceivedAt  time.Time

	Version int64

	CreatedAt time.Time
}

// TableName specifies the database table name for intake headers.
func (IntakeDTO) TableName() string {
	return "intakes"
}

// IntakeItemDTO represents one received line with its condition split and
// optional storage locations.
type IntakeItemDTO struct {
	PackageID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;primaryKey"`

	UsableQty    decimal.Decimal `gorm:"type:decimal(12,2)"`
	DefectiveQty decimal.Decimal `gorm:"type:decimal(12,2)"`
	ExpiredQty   decimal.Decimal `gorm:"type:decimal(12,2)"`

	UsableLocationID    *uuid.UUID `gorm:"type:uuid"`
	DefectiveLocationID *uuid.UUID `gorm:"type:uuid"`
	ExpiredLocationID   *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
}

// TableName specifies the database table name for intake lines.
func (IntakeItemDTO) TableName() string {
	return "intake_items"
}

// fromDomain converts an intake aggregate to its header and line rows.
func fromDomain(aggregate *intake.Intake) (IntakeDTO, []IntakeItemDTO) {
	header := IntakeDTO{
		PackageID:   aggregate.PackageID().Bytes(),
		InventoryID: aggregate.InventoryID().Bytes(),
		ReceivedAt:  aggregate.ReceivedAt(),
		Version:     aggregate.Version().Int64(),
	}

	items := make([]IntakeItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, IntakeItemDTO{
			PackageID:           aggregate.PackageID().Bytes(),
			ItemID:              item.ItemID().Bytes(),
			UsableQty:           item.Usable().Decimal(),
			DefectiveQty:        item.Defective().Decimal(),
			ExpiredQty:          item.Expired().Decimal(),
			UsableLocationID:    locationToBytes(item.UsableLocationID()),
			DefectiveLocationID: locationToBytes(item.DefectiveLocationID()),
			ExpiredLocationID:   locationToBytes(item.ExpiredLocationID()),
		})
	}

	return header, items
}

func locationToBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func locationFromBytes(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// toDomain converts header and line rows to an intake aggregate.
func toDomain(header IntakeDTO, itemDTOs []IntakeItemDTO) (*intake.Intake, error) {
	packageID, err := kernel.UUIDFromBytes(header.PackageID[:])
	if err != nil {
		return nil, err
	}
	inventoryID, err := kernel.UUIDFromBytes(header.InventoryID[:])
	if err != nil {
		return nil, err
	}
	version, err := kernel.RestoreVersion(header.Version)
	if err != nil {
		return nil, err
	}

	items := make([]*intake.Item, 0, len(itemDTOs))
	for _, dto := range itemDTOs {
		item, itemErr := itemToDomain(dto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return intake.RestoreIntake(packageID, inventoryID, header.ReceivedAt, items, version)
}

func itemToDomain(dto IntakeItemDTO) (*intake.Item, error) {
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}

	usable, err := kernel.NewQuantity(dto.UsableQty)
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

	usableLocationID, err := locationFromBytes(dto.UsableLocationID)
	if err != nil {
		return nil, err
	}
	defectiveLocationID, err := locationFromBytes(dto.DefectiveLocationID)
	if err != nil {
		return nil, err
	}
	expiredLocationID, err := locationFromBytes(dto.ExpiredLocationID)
	if err != nil {
		return nil, err
	}

	return intake.NewItem(
		itemID,
		usable, defective, expired,
		usableLocationID, defectiveLocationID, expiredLocationID,
	)
}
