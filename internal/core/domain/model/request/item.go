package request

import (
	"errors"
	"fmt"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/pkg/guard"
)

var (
	// ErrItemIsNotConstructed is returned when using an Item that bypassed
	// its constructors.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")
	// ErrQuantityExceedsRemaining is returned when issuing more than the
	// unfulfilled remainder of a request item.
	ErrQuantityExceedsRemaining = errors.New("quantity exceeds remaining requested amount")
	// ErrIssueQuantityIsNotPositive is returned when issuing a zero or unset
	// quantity.
	ErrIssueQuantityIsNotPositive = errors.New("issue quantity must be greater than zero")
	// ErrRequestedQuantityIsNotPositive is returned when creating an item with
	// nothing requested.
	ErrRequestedQuantityIsNotPositive = errors.New("requested quantity must be greater than zero")
)

// Item is one line of a relief request, keyed by item ID within its request.
// It tracks the requested quantity and the cumulative quantity already issued
// into packages. issued never exceeds requested; the invariant is enforced at
// allocation time rather than at persistence.
//
// Each item row carries its own version: two packages issuing against the
// same request line are a write-write conflict resolved by the version guard.
type Item struct {
	itemID    kernel.UUID
	requested kernel.Quantity
	issued    kernel.Quantity
	version   kernel.Version

	guard guard.ConstructorGuard
}

// NewItem creates a request line with nothing issued yet.
func NewItem(itemID kernel.UUID, requested kernel.Quantity) (*Item, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}
	if !requested.IsPositive() {
		return nil, ErrRequestedQuantityIsNotPositive
	}

	return &Item{
		itemID:    itemID,
		requested: requested,
		issued:    kernel.ZeroQuantity(),
		version:   kernel.NewVersion(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreItem reconstructs a request line from persistence.
func RestoreItem(
	itemID kernel.UUID,
	requested, issued kernel.Quantity,
	version kernel.Version,
) (*Item, error) {
	item, err := NewItem(itemID, requested)
	if err != nil {
		return nil, err
	}
	if err = version.Validate(); err != nil {
		return nil, err
	}
	if requested.LessThan(issued) {
		return nil, fmt.Errorf("%w: issued %s, requested %s",
			ErrQuantityExceedsRemaining, issued, requested)
	}

	item.issued = issued
	item.version = version
	return item, nil
}

// Validate ensures the item was built through a constructor.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ItemID returns the relief item this line refers to.
func (i *Item) ItemID() kernel.UUID { return i.itemID }

// Requested returns the total quantity the agency asked for.
func (i *Item) Requested() kernel.Quantity { return i.requested }

// Issued returns the cumulative quantity already packaged.
func (i *Item) Issued() kernel.Quantity { return i.issued }

// Version returns the row's optimistic concurrency counter.
func (i *Item) Version() kernel.Version { return i.version }

// Remaining returns the quantity still open for fulfillment.
func (i *Item) Remaining() kernel.Quantity {
	remaining, err := i.requested.Sub(i.issued)
	if err != nil {
		// issued ≤ requested is enforced on every mutation
		return kernel.ZeroQuantity()
	}
	return remaining
}

// Issue adds qty to the cumulative issued amount during package creation.
// Fails with ErrQuantityExceedsRemaining when qty is larger than Remaining;
// the message carries the attempted and remaining quantities.
func (i *Item) Issue(qty kernel.Quantity) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if !qty.IsPositive() {
		return ErrIssueQuantityIsNotPositive
	}
	if i.Remaining().LessThan(qty) {
		return fmt.Errorf("%w: %s requested, %s remaining for item %s",
			ErrQuantityExceedsRemaining, qty, i.Remaining(), i.itemID)
	}

	i.issued = i.issued.Add(qty)
	return nil
}

// IsFullyIssued reports whether the whole requested quantity is packaged.
func (i *Item) IsFullyIssued() bool {
	return i.Remaining().IsZero()
}
