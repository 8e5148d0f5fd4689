package commands

import (
	"context"
	"time"
)

// DispatchPackageCommandHandler marks a pending package as dispatched.
// The guarded update on the package row makes two concurrent dispatches of
// the same package resolve to exactly one winner.
type DispatchPackageCommandHandler struct {
	uowFactory PackageUoWFactory
}

// NewDispatchPackageCommandHandler creates a handler for package dispatch.
func NewDispatchPackageCommandHandler(uowFactory PackageUoWFactory) DispatchPackageCommandHandler {
	return DispatchPackageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the dispatch command. Fails for packages that are not
// Pending; no quantities move.
func (h *DispatchPackageCommandHandler) Handle(ctx context.Context, cmd DispatchPackageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	packageRepo := uow.PackageRepository()
	pkg, err := packageRepo.Get(ctx, cmd.PackageID())
	if err != nil {
		return err
	}

	if err = pkg.Dispatch(time.Now()); err != nil {
		return err
	}

	if err = packageRepo.Update(ctx, pkg); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
