package reliefpkg

import (
	"errors"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/pkg/guard"
)

var (
	// ErrItemIsNotConstructed is returned when using an Item that bypassed
	// its constructor.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem")
	// ErrItemQuantityIsNotPositive is returned for zero or unset line
	// quantities.
	ErrItemQuantityIsNotPositive = errors.New("line quantity must be greater than zero")
)

// Item is one package line: a quantity of a relief item allocated from a
// specific source inventory record. The source inventory identifies where the
// matching reserved stock sits until intake consumes it.
type Item struct {
	sourceInventoryID kernel.UUID
	itemID            kernel.UUID
	qty               kernel.Quantity

	guard guard.ConstructorGuard
}

// NewItem creates a package line. The quantity must be positive; callers are
// expected to have already reserved it on the source inventory.
func NewItem(sourceInventoryID, itemID kernel.UUID, qty kernel.Quantity) (*Item, error) {
	if err := errors.Join(sourceInventoryID.Validate(), itemID.Validate()); err != nil {
		return nil, err
	}
	if !qty.IsPositive() {
		return nil, ErrItemQuantityIsNotPositive
	}

	return &Item{
		sourceInventoryID: sourceInventoryID,
		itemID:            itemID,
		qty:               qty,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the line was built through its constructor.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// SourceInventoryID returns the inventory record the stock was reserved on.
func (i *Item) SourceInventoryID() kernel.UUID { return i.sourceInventoryID }

// ItemID returns the relief item.
func (i *Item) ItemID() kernel.UUID { return i.itemID }

// Qty returns the allocated quantity.
func (i *Item) Qty() kernel.Quantity { return i.qty }
