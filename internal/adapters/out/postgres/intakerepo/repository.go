package intakerepo

import (
	"context"
	"errors"

	"relief/internal/core/domain/model/intake"
	"relief/internal/core/domain/model/kernel"
	"relief/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormIntakeRepository implements IntakeRepository using GORM.
type GormIntakeRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormIntakeRepository creates a new GORM intake repository.
func NewGormIntakeRepository(db *gorm.DB, tracker aggregateTracker) *GormIntakeRepository {
	return &GormIntakeRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new intake header and all of its lines. The primary key on
// package ID makes a second receipt for the same package a constraint
// violation rather than a silent duplicate.
func (r *GormIntakeRepository) Add(ctx context.Context, aggregate *intake.Intake) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, items := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&header).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.PackageID(), aggregate)
	return nil
}

// GetByPackage retrieves the intake recorded for a package.
func (r *GormIntakeRepository) GetByPackage(ctx context.Context, packageID kernel.UUID) (*intake.Intake, error) {
	if err := packageID.Validate(); err != nil {
		return nil, err
	}

	var header IntakeDTO
	if err := r.db.WithContext(ctx).First(&header, "package_id = ?", packageID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("intake", packageID.String())
		}
		return nil, err
	}

	var items []IntakeItemDTO
	err := r.db.WithContext(ctx).
		Order("item_id").
		Find(&items, "package_id = ?", packageID.Bytes()).
		Error
	if err != nil {
		return nil, err
	}

	return toDomain(header, items)
}
