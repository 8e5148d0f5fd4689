package ports

import (
	"context"

	"relief/internal/core/domain/model/intake"
	"relief/internal/core/domain/model/kernel"
)

// IntakeRepository persists Intake records. Intakes are append-only: once a
// receipt is recorded it is never modified.
type IntakeRepository interface {
	// Add saves a new intake record and its lines.
	Add(ctx context.Context, aggregate *intake.Intake) error

	// GetByPackage retrieves the intake recorded for a package, if any.
	GetByPackage(ctx context.Context, packageID kernel.UUID) (*intake.Intake, error)
}
