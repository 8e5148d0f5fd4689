package intake

import (
	"errors"
	"time"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/pkg/guard"
)

// Domain errors for intake operations.
var (
	// ErrIntakeIsNotConstructed is returned when using an Intake that
	// bypassed its constructors.
	ErrIntakeIsNotConstructed = errors.New(
		"Intake must be created via NewIntake or RestoreIntake",
	)
	// ErrItemIsNotConstructed is returned when using an Item that bypassed
	// its constructor.
	ErrItemIsNotConstructed = errors.New("intake Item must be created via NewItem")
	// ErrIntakeHasNoItems is returned when recording an intake without lines.
	ErrIntakeHasNoItems = errors.New("intake must contain at least one item")
	// ErrNothingReceived is returned when an intake line's split sums to zero.
	ErrNothingReceived = errors.New("intake item must receive a positive total quantity")
)

// Item is one received line: the quantity of a relief item split into the
// condition buckets it lands in, each with an optional storage location.
type Item struct {
	itemID    kernel.UUID
	usable    kernel.Quantity
	defective kernel.Quantity
	expired   kernel.Quantity

	usableLocationID    *kernel.UUID
	defectiveLocationID *kernel.UUID
	expiredLocationID   *kernel.UUID

	guard guard.ConstructorGuard
}

// NewItem creates an intake line. The three bucket quantities may each be
// zero but must sum to a positive total.
func NewItem(
	itemID kernel.UUID,
	usable, defective, expired kernel.Quantity,
	usableLocationID, defectiveLocationID, expiredLocationID *kernel.UUID,
) (*Item, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}
	if !usable.Add(defective).Add(expired).IsPositive() {
		return nil, ErrNothingReceived
	}

	return &Item{
		itemID:              itemID,
		usable:              usable,
		defective:           defective,
		expired:             expired,
		usableLocationID:    usableLocationID,
		defectiveLocationID: defectiveLocationID,
		expiredLocationID:   expiredLocationID,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the line was built through its constructor.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ItemID returns the relief item.
func (i *Item) ItemID() kernel.UUID { return i.itemID }

// Usable returns the portion received in usable condition.
func (i *Item) Usable() kernel.Quantity { return i.usable }

// Defective returns the portion received damaged.
func (i *Item) Defective() kernel.Quantity { return i.defective }

// Expired returns the portion received past expiry.
func (i *Item) Expired() kernel.Quantity { return i.expired }

// UsableLocationID returns where the usable portion was stored, if recorded.
func (i *Item) UsableLocationID() *kernel.UUID { return i.usableLocationID }

// DefectiveLocationID returns where the defective portion was stored, if recorded.
func (i *Item) DefectiveLocationID() *kernel.UUID { return i.defectiveLocationID }

// ExpiredLocationID returns where the expired portion was stored, if recorded.
func (i *Item) ExpiredLocationID() *kernel.UUID { return i.expiredLocationID }

// Total returns the full received quantity across all three buckets.
func (i *Item) Total() kernel.Quantity {
	return i.usable.Add(i.defective).Add(i.expired)
}

// Intake records the receipt of one dispatched package into a destination
// inventory. It is keyed by the (package, inventory) pair it closes out.
type Intake struct {
	packageID   kernel.UUID
	inventoryID kernel.UUID
	receivedAt  time.Time
	items       []*Item

	version kernel.Version

	guard guard.ConstructorGuard
}

// NewIntake creates an intake record with its received lines.
func NewIntake(packageID, inventoryID kernel.UUID, receivedAt time.Time, items []*Item) (*Intake, error) {
	if err := errors.Join(packageID.Validate(), inventoryID.Validate()); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrIntakeHasNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Intake{
		packageID:   packageID,
		inventoryID: inventoryID,
		receivedAt:  receivedAt,
		items:       items,
		version:     kernel.NewVersion(),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreIntake reconstructs an Intake aggregate from persistence.
func RestoreIntake(
	packageID, inventoryID kernel.UUID,
	receivedAt time.Time,
	items []*Item,
	version kernel.Version,
) (*Intake, error) {
	record, err := NewIntake(packageID, inventoryID, receivedAt, items)
	if err != nil {
		return nil, err
	}
	if err = version.Validate(); err != nil {
		return nil, err
	}

	record.version = version
	return record, nil
}

// Validate ensures the aggregate was built through a constructor.
func (r *Intake) Validate() error {
	if r == nil {
		return ErrIntakeIsNotConstructed
	}
	return r.guard.Validate(ErrIntakeIsNotConstructed)
}

// PackageID returns the package this intake closes out.
func (r *Intake) PackageID() kernel.UUID { return r.packageID }

// InventoryID returns the destination inventory.
func (r *Intake) InventoryID() kernel.UUID { return r.inventoryID }

// ReceivedAt returns the receipt timestamp.
func (r *Intake) ReceivedAt() time.Time { return r.receivedAt }

// Items returns the received lines.
func (r *Intake) Items() []*Item { return r.items }

// Version returns the optimistic concurrency counter.
func (r *Intake) Version() kernel.Version { return r.version }
