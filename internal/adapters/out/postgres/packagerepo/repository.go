package packagerepo

import (
	"context"
	"errors"

	"relief/internal/adapters/out/postgres/versioning"
	"relief/internal/core/domain/model/kernel"
	"relief/internal/core/domain/model/reliefpkg"
	"relief/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPackageRepository implements PackageRepository using GORM.
type GormPackageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPackageRepository creates a new GORM package repository.
func NewGormPackageRepository(db *gorm.DB, tracker aggregateTracker) *GormPackageRepository {
	return &GormPackageRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new package header and all of its lines.
func (r *GormPackageRepository) Add(ctx context.Context, aggregate *reliefpkg.Package) error {
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

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves package status changes through the guarded update. Two
// concurrent dispatches of the same package resolve to exactly one winner
// here. Lines are immutable and are not rewritten.
func (r *GormPackageRepository) Update(ctx context.Context, aggregate *reliefpkg.Package) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, _ := fromDomain(aggregate)
	err := versioning.GuardedUpdate(
		ctx, r.db, &PackageDTO{},
		"package", aggregate.ID().String(),
		map[string]any{"id": header.ID},
		aggregate.Version(),
		map[string]any{
			"status":        header.Status,
			"dispatched_at": header.DispatchedAt,
		},
	)
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a package with all of its lines.
func (r *GormPackageRepository) Get(ctx context.Context, id kernel.UUID) (*reliefpkg.Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var header PackageDTO
	if err := r.db.WithContext(ctx).First(&header, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		return nil, err
	}

	var items []PackageItemDTO
	err := r.db.WithContext(ctx).
		Order("item_id").
		Find(&items, "package_id = ?", id.Bytes()).
		Error
	if err != nil {
		return nil, err
	}

	return toDomain(header, items)
}
