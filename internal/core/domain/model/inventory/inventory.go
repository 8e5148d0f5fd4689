package inventory

import (
	"errors"
	"fmt"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/pkg/guard"
)

// Domain errors for inventory operations.
var (
	// ErrInventoryIsNotConstructed is returned when using an Inventory that
	// bypassed its constructors.
	ErrInventoryIsNotConstructed = errors.New(
		"Inventory must be created via NewInventory or RestoreInventory",
	)
	// ErrQuantityIsNotPositive is returned when a bucket movement is requested
	// with a zero or unset quantity.
	ErrQuantityIsNotPositive = errors.New("quantity must be greater than zero")
	// ErrInsufficientStock is returned when a reservation exceeds the usable
	// bucket.
	ErrInsufficientStock = errors.New("insufficient usable stock")
	// ErrInsufficientReserved is returned when an intake consumes more than
	// the reserved bucket holds.
	ErrInsufficientReserved = errors.New("insufficient reserved stock")
	// ErrInventoryIsNotActive is returned when moving stock on an inactive
	// record.
	ErrInventoryIsNotActive = errors.New("inventory is not active")
)

// Inventory is the aggregate tracking one warehouse's stock of one item.
//
// Invariants:
//   - every bucket is ≥ 0 at all times
//   - Reserve moves exactly qty from usable to reserved, so
//     usable_before == usable_after + qty holds for every reservation
//   - the version only advances through the guarded persistence path
//
// Inventory carries no in-process locking: concurrent writers are resolved at
// commit time by the version guard, so a loaded aggregate is a snapshot that
// may already be stale.
type Inventory struct {
	id          kernel.UUID
	warehouseID kernel.UUID
	itemID      kernel.UUID

	usable    kernel.Quantity
	reserved  kernel.Quantity
	defective kernel.Quantity
	expired   kernel.Quantity

	status  Status
	version kernel.Version

	guard guard.ConstructorGuard
}

// NewInventory creates an empty active inventory record for a warehouse/item
// pair. All buckets start at zero and the version starts at 1.
func NewInventory(id, warehouseID, itemID kernel.UUID) (*Inventory, error) {
	inv := &Inventory{
		usable:    kernel.ZeroQuantity(),
		reserved:  kernel.ZeroQuantity(),
		defective: kernel.ZeroQuantity(),
		expired:   kernel.ZeroQuantity(),
		status:    Active,
		version:   kernel.NewVersion(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		inv.setID(id),
		inv.setWarehouseID(warehouseID),
		inv.setItemID(itemID),
	); err != nil {
		return nil, err
	}

	return inv, nil
}

// RestoreInventory reconstructs an Inventory aggregate from persistence,
// including its bucket quantities, status, and persisted version.
func RestoreInventory(
	id, warehouseID, itemID kernel.UUID,
	usable, reserved, defective, expired kernel.Quantity,
	status Status,
	version kernel.Version,
) (*Inventory, error) {
	inv, err := NewInventory(id, warehouseID, itemID)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(status.Validate(), version.Validate()); err != nil {
		return nil, err
	}

	inv.usable = usable
	inv.reserved = reserved
	inv.defective = defective
	inv.expired = expired
	inv.status = status
	inv.version = version
	return inv, nil
}

// Validate ensures the aggregate was built through a constructor.
func (i *Inventory) Validate() error {
	if i == nil {
		return ErrInventoryIsNotConstructed
	}
	return i.guard.Validate(ErrInventoryIsNotConstructed)
}

// ID returns the inventory record identifier.
func (i *Inventory) ID() kernel.UUID { return i.id }

// WarehouseID returns the owning warehouse.
func (i *Inventory) WarehouseID() kernel.UUID { return i.warehouseID }

// ItemID returns the item this record is scoped to.
func (i *Inventory) ItemID() kernel.UUID { return i.itemID }

// Usable returns the bucket available for new allocation.
func (i *Inventory) Usable() kernel.Quantity { return i.usable }

// Reserved returns the bucket set aside for pending packages.
func (i *Inventory) Reserved() kernel.Quantity { return i.reserved }

// Defective returns the damaged-goods bucket.
func (i *Inventory) Defective() kernel.Quantity { return i.defective }

// Expired returns the expired-goods bucket.
func (i *Inventory) Expired() kernel.Quantity { return i.expired }

// Status returns the record's allocation status.
func (i *Inventory) Status() Status { return i.status }

// Version returns the optimistic concurrency counter read from persistence.
func (i *Inventory) Version() kernel.Version { return i.version }

// IsActive reports whether the record participates in allocation.
func (i *Inventory) IsActive() bool { return i.status == Active }

// Total returns the sum of all four buckets: the total physical stock known
// at this warehouse for this item.
func (i *Inventory) Total() kernel.Quantity {
	return i.usable.Add(i.reserved).Add(i.defective).Add(i.expired)
}

// Reserve moves qty from the usable bucket to the reserved bucket as part of
// package creation.
//
// Fails with ErrInsufficientStock when qty exceeds the usable bucket; the
// error message carries the attempted and available quantities so callers can
// surface an actionable message.
func (i *Inventory) Reserve(qty kernel.Quantity) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if !i.IsActive() {
		return fmt.Errorf("%w: inventory %s", ErrInventoryIsNotActive, i.id)
	}
	if !qty.IsPositive() {
		return ErrQuantityIsNotPositive
	}
	if i.usable.LessThan(qty) {
		return fmt.Errorf("%w: %s available, %s requested for item %s",
			ErrInsufficientStock, i.usable, qty, i.itemID)
	}

	remaining, err := i.usable.Sub(qty)
	if err != nil {
		return err
	}

	i.usable = remaining
	i.reserved = i.reserved.Add(qty)
	return nil
}

// ConsumeReserved removes qty from the reserved bucket when a dispatched
// package is received at its destination.
func (i *Inventory) ConsumeReserved(qty kernel.Quantity) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if !qty.IsPositive() {
		return ErrQuantityIsNotPositive
	}
	if i.reserved.LessThan(qty) {
		return fmt.Errorf("%w: %s reserved, %s consumed for item %s",
			ErrInsufficientReserved, i.reserved, qty, i.itemID)
	}

	remaining, err := i.reserved.Sub(qty)
	if err != nil {
		return err
	}

	i.reserved = remaining
	return nil
}

// CreditIntake adds received stock to the usable, defective, and expired
// buckets according to the intake split recorded at the destination.
func (i *Inventory) CreditIntake(usable, defective, expired kernel.Quantity) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if !i.IsActive() {
		return fmt.Errorf("%w: inventory %s", ErrInventoryIsNotActive, i.id)
	}

	i.usable = i.usable.Add(usable)
	i.defective = i.defective.Add(defective)
	i.expired = i.expired.Add(expired)
	return nil
}

func (i *Inventory) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Inventory) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.warehouseID = id
	return nil
}

func (i *Inventory) setItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.itemID = id
	return nil
}
