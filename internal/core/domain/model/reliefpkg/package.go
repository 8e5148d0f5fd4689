package reliefpkg

import (
	"errors"
	"fmt"
	"time"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/pkg/guard"
)

// Domain errors for package operations.
var (
	// ErrPackageIsNotConstructed is returned when using a Package that
	// bypassed its constructors.
	ErrPackageIsNotConstructed = errors.New(
		"Package must be created via NewPackage or RestorePackage",
	)
	// ErrEmptyPackage is returned when a package would carry no positive
	// line quantities. No partial package may be created.
	ErrEmptyPackage = errors.New("package must contain at least one item with positive quantity")
	// ErrPackageNotPending is returned when dispatching a package that has
	// already left the Pending status.
	ErrPackageNotPending = errors.New("only pending packages can be dispatched")
	// ErrPackageNotDispatched is returned when recording intake for a package
	// that is not in transit.
	ErrPackageNotDispatched = errors.New("only dispatched packages can be received")
	// ErrLineAlreadyAdded is returned when two lines name the same source
	// inventory and item.
	ErrLineAlreadyAdded = errors.New("package already contains a line for this inventory and item")
)

// Package is the aggregate root for one fulfillment shipment. It references
// exactly one relief request and one destination inventory record (the slot
// that will later receive the intake) and owns its allocation lines.
type Package struct {
	id            kernel.UUID
	requestID     kernel.UUID
	toInventoryID kernel.UUID

	status       Status
	dispatchedAt *time.Time
	items        []*Item

	version kernel.Version

	guard guard.ConstructorGuard
}

// NewPackage creates an empty Pending package. Lines are added one by one as
// the allocation loop validates and reserves each of them.
func NewPackage(id, requestID, toInventoryID kernel.UUID) (*Package, error) {
	pkg := &Package{
		status:  Pending,
		version: kernel.NewVersion(),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		pkg.setID(id),
		pkg.setRequestID(requestID),
		pkg.setToInventoryID(toInventoryID),
	); err != nil {
		return nil, err
	}

	return pkg, nil
}

// RestorePackage reconstructs a Package aggregate from persistence.
func RestorePackage(
	id, requestID, toInventoryID kernel.UUID,
	status Status,
	dispatchedAt *time.Time,
	items []*Item,
	version kernel.Version,
) (*Package, error) {
	pkg, err := NewPackage(id, requestID, toInventoryID)
	if err != nil {
		return nil, err
	}
	if err = errors.Join(status.Validate(), version.Validate()); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err = item.Validate(); err != nil {
			return nil, err
		}
	}

	pkg.status = status
	pkg.dispatchedAt = dispatchedAt
	pkg.items = items
	pkg.version = version
	return pkg, nil
}

// Validate ensures the aggregate was built through a constructor.
func (p *Package) Validate() error {
	if p == nil {
		return ErrPackageIsNotConstructed
	}
	return p.guard.Validate(ErrPackageIsNotConstructed)
}

// ID returns the package identifier.
func (p *Package) ID() kernel.UUID { return p.id }

// RequestID returns the relief request being fulfilled.
func (p *Package) RequestID() kernel.UUID { return p.requestID }

// ToInventoryID returns the destination inventory slot.
func (p *Package) ToInventoryID() kernel.UUID { return p.toInventoryID }

// Status returns the lifecycle status.
func (p *Package) Status() Status { return p.status }

// DispatchedAt returns the dispatch timestamp, nil while Pending.
func (p *Package) DispatchedAt() *time.Time { return p.dispatchedAt }

// Items returns the allocation lines.
func (p *Package) Items() []*Item { return p.items }

// Version returns the optimistic concurrency counter.
func (p *Package) Version() kernel.Version { return p.version }

// AddItem appends an allocation line while the package is Pending.
// Two lines for the same (source inventory, item) pair are rejected.
func (p *Package) AddItem(item *Item) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.status != Pending {
		return fmt.Errorf("%w: package is %s", ErrPackageNotPending, p.status)
	}
	if err := item.Validate(); err != nil {
		return err
	}

	for _, existing := range p.items {
		if existing.SourceInventoryID().IsEqual(item.SourceInventoryID()) &&
			existing.ItemID().IsEqual(item.ItemID()) {
			return fmt.Errorf("%w: inventory %s, item %s",
				ErrLineAlreadyAdded, item.SourceInventoryID(), item.ItemID())
		}
	}

	p.items = append(p.items, item)
	return nil
}

// ValidateNotEmpty checks the package carries at least one line. Called once
// the allocation loop finishes, before persisting.
func (p *Package) ValidateNotEmpty() error {
	if len(p.items) == 0 {
		return ErrEmptyPackage
	}
	return nil
}

// Dispatch hands the package to transport: Pending → Dispatched plus the
// dispatch timestamp. No quantities move.
func (p *Package) Dispatch(at time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}

	newStatus, err := p.status.Dispatch()
	if err != nil {
		return err
	}

	p.status = newStatus
	p.dispatchedAt = &at
	return nil
}

// Complete closes the package after its intake has been recorded:
// Dispatched → Completed.
func (p *Package) Complete() error {
	if err := p.Validate(); err != nil {
		return err
	}

	newStatus, err := p.status.Complete()
	if err != nil {
		return err
	}

	p.status = newStatus
	return nil
}

// DispatchedQuantities sums line quantities per relief item. Intake uses it
// to verify that the received split covers exactly what was dispatched.
func (p *Package) DispatchedQuantities() map[kernel.UUID]kernel.Quantity {
	totals := make(map[kernel.UUID]kernel.Quantity, len(p.items))
	for _, item := range p.items {
		if existing, ok := totals[item.ItemID()]; ok {
			totals[item.ItemID()] = existing.Add(item.Qty())
			continue
		}
		totals[item.ItemID()] = item.Qty()
	}
	return totals
}

func (p *Package) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Package) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.requestID = id
	return nil
}

func (p *Package) setToInventoryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.toInventoryID = id
	return nil
}
