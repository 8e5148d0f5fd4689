// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/core/domain/model/reliefpkg"
	"relief/internal/pkg/guard"
)

var (
	ErrGetPackagesQueryIsNotConstructed = errors.New(
		"GetPackagesQuery must be created via NewGetPackagesQuery or NewGetPackagesQueryForStatus constructor",
	)
)

// GetPackagesQuery retrieves relief packages, optionally narrowed to one
// lifecycle status. Used by operations staff to monitor what is pending,
// in transit, or delivered.
//
// Example:
//
//	query, err := queries.NewGetPackagesQueryForStatus(reliefpkg.Dispatched)
//	if err != nil {
//	    return err
//	}
//	handler := queries.NewGetPackagesQueryHandler(db)
//
//	packages, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve packages: %w", err)
//	}
//
//	fmt.Printf("%d packages in transit\n", len(packages))
type GetPackagesQuery struct {
	status    reliefpkg.Status
	hasStatus bool

	guard guard.ConstructorGuard
}

// NewGetPackagesQuery creates a query that retrieves packages in every status.
func NewGetPackagesQuery() GetPackagesQuery {
	return GetPackagesQuery{guard: guard.NewConstructorGuard()}
}

// NewGetPackagesQueryForStatus creates a query narrowed to one package status.
func NewGetPackagesQueryForStatus(status reliefpkg.Status) (GetPackagesQuery, error) {
	if err := status.Validate(); err != nil {
		return GetPackagesQuery{}, err
	}
	return GetPackagesQuery{
		status:    status,
		hasStatus: true,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Status returns the status filter and whether one was set.
func (q GetPackagesQuery) Status() (reliefpkg.Status, bool) {
	return q.status, q.hasStatus
}

// Validate ensures the query was created through a constructor.
// Returns ErrGetPackagesQueryIsNotConstructed if validation fails.
func (q GetPackagesQuery) Validate() error {
	return q.guard.Validate(ErrGetPackagesQueryIsNotConstructed)
}

// GetPackagesQueryResponse represents package information in the read model.
type GetPackagesQueryResponse struct {
	ID            kernel.UUID
	RequestID     kernel.UUID
	ToInventoryID kernel.UUID
	Status        reliefpkg.Status
	DispatchedAt  *time.Time
}
