package commands

import (
	"errors"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/pkg/errs"
	"relief/internal/pkg/guard"
)

var (
	ErrCreatePackageCommandIsNotConstructed = errors.New(
		"CreatePackageCommand must be created via NewCreatePackageCommand constructor",
	)
	ErrLinesAreRequired = errors.New("at least one package line is required")

	// ErrLineQuantityIsNotPositive is returned when a zero-quantity line
	// appears alongside positive ones. An all-zero line set fails as an empty
	// package instead.
	ErrLineQuantityIsNotPositive = errs.NewValueIsInvalidError(
		"line quantity must be greater than zero",
	)
)

// PackageLine is one requested allocation: a relief item and the quantity to
// pull from the source warehouse. Quantities are validated during handling: a
// line set where every quantity is zero is rejected as an empty package, and
// a zero line mixed with positive ones fails the whole batch.
type PackageLine struct {
	itemID kernel.UUID
	qty    kernel.Quantity
}

// NewPackageLine creates an allocation line for a package command.
func NewPackageLine(itemID kernel.UUID, qty kernel.Quantity) (PackageLine, error) {
	if err := itemID.Validate(); err != nil {
		return PackageLine{}, err
	}
	return PackageLine{itemID: itemID, qty: qty}, nil
}

// ItemID returns the relief item to allocate.
func (l PackageLine) ItemID() kernel.UUID { return l.itemID }

// Qty returns the quantity to allocate.
func (l PackageLine) Qty() kernel.Quantity { return l.qty }

// CreatePackageCommand represents a request to assemble a relief package
// against an approved request: reserve stock at the source warehouse, record
// the issued quantities on the request, and persist the pending package.
type CreatePackageCommand struct { //nolint:recvcheck //using for validation
	packageID       kernel.UUID
	requestID       kernel.UUID
	fromWarehouseID kernel.UUID
	toWarehouseID   kernel.UUID
	lines           []PackageLine

	guard guard.ConstructorGuard
}

// NewCreatePackageCommand creates a command to assemble a new package.
// Validates all identifiers and requires at least one line.
func NewCreatePackageCommand(
	packageID, requestID, fromWarehouseID, toWarehouseID kernel.UUID,
	lines []PackageLine,
) (CreatePackageCommand, error) {
	cmd := CreatePackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setRequestID(requestID),
		cmd.setFromWarehouseID(fromWarehouseID),
		cmd.setToWarehouseID(toWarehouseID),
		cmd.setLines(lines),
	); err != nil {
		return CreatePackageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePackageCommand) Validate() error {
	return c.guard.Validate(ErrCreatePackageCommandIsNotConstructed)
}

// PackageID returns the identifier the new package will carry.
func (c CreatePackageCommand) PackageID() kernel.UUID { return c.packageID }

// RequestID returns the relief request being fulfilled.
func (c CreatePackageCommand) RequestID() kernel.UUID { return c.requestID }

// FromWarehouseID returns the warehouse stock is allocated from.
func (c CreatePackageCommand) FromWarehouseID() kernel.UUID { return c.fromWarehouseID }

// ToWarehouseID returns the warehouse the package ships to.
func (c CreatePackageCommand) ToWarehouseID() kernel.UUID { return c.toWarehouseID }

// Lines returns the requested allocation lines.
func (c CreatePackageCommand) Lines() []PackageLine { return c.lines }

func (c *CreatePackageCommand) setPackageID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.packageID = id
	return nil
}

func (c *CreatePackageCommand) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requestID = id
	return nil
}

func (c *CreatePackageCommand) setFromWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.fromWarehouseID = id
	return nil
}

func (c *CreatePackageCommand) setToWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.toWarehouseID = id
	return nil
}

func (c *CreatePackageCommand) setLines(lines []PackageLine) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}
	c.lines = lines
	return nil
}
