package commands

import (
	"errors"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/pkg/guard"
)

var (
	ErrRecordIntakeCommandIsNotConstructed = errors.New(
		"RecordIntakeCommand must be created via NewRecordIntakeCommand constructor",
	)
	ErrIntakeLinesAreRequired = errors.New("at least one intake line is required")
	// ErrIntakeDoesNotMatchDispatch is returned when the received split does
	// not cover exactly what the package dispatched, per item.
	ErrIntakeDoesNotMatchDispatch = errors.New("intake quantities do not match dispatched quantities")
)

// IntakeLine is one received line: the quantity of a relief item split into
// the condition it arrived in, with an optional storage location per bucket.
type IntakeLine struct {
	itemID    kernel.UUID
	usable    kernel.Quantity
	defective kernel.Quantity
	expired   kernel.Quantity

	usableLocationID    *kernel.UUID
	defectiveLocationID *kernel.UUID
	expiredLocationID   *kernel.UUID
}

// NewIntakeLine creates an intake line for a receipt command.
func NewIntakeLine(
	itemID kernel.UUID,
	usable, defective, expired kernel.Quantity,
	usableLocationID, defectiveLocationID, expiredLocationID *kernel.UUID,
) (IntakeLine, error) {
	if err := itemID.Validate(); err != nil {
		return IntakeLine{}, err
	}

	return IntakeLine{
		itemID:              itemID,
		usable:              usable,
		defective:           defective,
		expired:             expired,
		usableLocationID:    usableLocationID,
		defectiveLocationID: defectiveLocationID,
		expiredLocationID:   expiredLocationID,
	}, nil
}

// ItemID returns the relief item received.
func (l IntakeLine) ItemID() kernel.UUID { return l.itemID }

// Usable returns the portion received in usable condition.
func (l IntakeLine) Usable() kernel.Quantity { return l.usable }

// Defective returns the portion received damaged.
func (l IntakeLine) Defective() kernel.Quantity { return l.defective }

// Expired returns the portion received past expiry.
func (l IntakeLine) Expired() kernel.Quantity { return l.expired }

// UsableLocationID returns where the usable portion was stored, if recorded.
func (l IntakeLine) UsableLocationID() *kernel.UUID { return l.usableLocationID }

// DefectiveLocationID returns where the defective portion was stored, if recorded.
func (l IntakeLine) DefectiveLocationID() *kernel.UUID { return l.defectiveLocationID }

// ExpiredLocationID returns where the expired portion was stored, if recorded.
func (l IntakeLine) ExpiredLocationID() *kernel.UUID { return l.expiredLocationID }

// Total returns the full received quantity across the three buckets.
func (l IntakeLine) Total() kernel.Quantity {
	return l.usable.Add(l.defective).Add(l.expired)
}

// RecordIntakeCommand represents the receipt of a dispatched package at its
// destination warehouse: reserved stock at the sources is released, the
// destination inventory is credited by condition, and the package completes.
type RecordIntakeCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID
	lines     []IntakeLine

	guard guard.ConstructorGuard
}

// NewRecordIntakeCommand creates a command to record a package receipt.
func NewRecordIntakeCommand(packageID kernel.UUID, lines []IntakeLine) (RecordIntakeCommand, error) {
	cmd := RecordIntakeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setLines(lines),
	); err != nil {
		return RecordIntakeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordIntakeCommand) Validate() error {
	return c.guard.Validate(ErrRecordIntakeCommandIsNotConstructed)
}

// PackageID returns the package being received.
func (c RecordIntakeCommand) PackageID() kernel.UUID { return c.packageID }

// Lines returns the received lines.
func (c RecordIntakeCommand) Lines() []IntakeLine { return c.lines }

func (c *RecordIntakeCommand) setPackageID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.packageID = id
	return nil
}

func (c *RecordIntakeCommand) setLines(lines []IntakeLine) error {
	if len(lines) == 0 {
		return ErrIntakeLinesAreRequired
	}
	c.lines = lines
	return nil
}
