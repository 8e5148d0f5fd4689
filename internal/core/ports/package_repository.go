package ports

import (
	"context"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/core/domain/model/reliefpkg"
)

// PackageRepository persists relief Package aggregates with their lines.
type PackageRepository interface {
	// Add saves a new package and all of its lines.
	Add(ctx context.Context, aggregate *reliefpkg.Package) error

	// Update saves package status changes via a guarded update. Lines are
	// immutable after creation and are not rewritten.
	Update(ctx context.Context, aggregate *reliefpkg.Package) error

	// Get retrieves a package with all of its lines.
	Get(ctx context.Context, id kernel.UUID) (*reliefpkg.Package, error)
}
