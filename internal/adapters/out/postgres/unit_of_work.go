// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. All repository writes made through one unit of work land in one
// database transaction, which is what makes the fulfillment workflow's
// multi-entity commits all-or-nothing: a guarded update that loses its
// version race fails the transaction, and every quantity movement made before
// it is rolled back with it.
package postgres

import (
	"context"

	"relief/internal/adapters/out/postgres/intakerepo"
	"relief/internal/adapters/out/postgres/inventoryrepo"
	"relief/internal/adapters/out/postgres/packagerepo"
	"relief/internal/adapters/out/postgres/requestrepo"
	"relief/internal/core/domain/model/kernel"
	"relief/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances backed by a shared GORM
// connection. Each business operation gets a fresh unit of work with its own
// transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance ready for a business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the inventory,
// request, package, and intake repositories, and tracks the aggregates
// modified within it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Calling Begin again on an open unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns error if no active transaction exists or if the commit fails.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
// Returns error if no active transaction exists or if the rollback fails.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// InventoryRepository returns an inventory repository bound to the current
// transaction, or to the main connection when no transaction is open.
func (uow *GormUnitOfWork) InventoryRepository() ports.InventoryRepository {
	return inventoryrepo.NewGormInventoryRepository(uow.conn(), uow)
}

// RequestRepository returns a request repository bound to the current
// transaction, or to the main connection when no transaction is open.
func (uow *GormUnitOfWork) RequestRepository() ports.RequestRepository {
	return requestrepo.NewGormRequestRepository(uow.conn(), uow)
}

// PackageRepository returns a package repository bound to the current
// transaction, or to the main connection when no transaction is open.
func (uow *GormUnitOfWork) PackageRepository() ports.PackageRepository {
	return packagerepo.NewGormPackageRepository(uow.conn(), uow)
}

// IntakeRepository returns an intake repository bound to the current
// transaction, or to the main connection when no transaction is open.
func (uow *GormUnitOfWork) IntakeRepository() ports.IntakeRepository {
	return intakerepo.NewGormIntakeRepository(uow.conn(), uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Repositories call it on every Add and Update; the tracked list is
// available for post-commit processing such as event publishing.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
