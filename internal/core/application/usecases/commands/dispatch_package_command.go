package commands

import (
	"errors"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/pkg/guard"
)

var ErrDispatchPackageCommandIsNotConstructed = errors.New(
	"DispatchPackageCommand must be created via NewDispatchPackageCommand constructor",
)

// DispatchPackageCommand represents a request to hand a pending package over
// to transport. Dispatch changes only the package status and timestamp; the
// reserved stock stays reserved until intake.
type DispatchPackageCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchPackageCommand creates a command to dispatch a package.
func NewDispatchPackageCommand(packageID kernel.UUID) (DispatchPackageCommand, error) {
	cmd := DispatchPackageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setPackageID(packageID); err != nil {
		return DispatchPackageCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchPackageCommand) Validate() error {
	return c.guard.Validate(ErrDispatchPackageCommandIsNotConstructed)
}

// PackageID returns the package to dispatch.
func (c DispatchPackageCommand) PackageID() kernel.UUID { return c.packageID }

func (c *DispatchPackageCommand) setPackageID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.packageID = id
	return nil
}
