package queries

import (
	"errors"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/pkg/guard"
)

var (
	ErrGetLowStockQueryIsNotConstructed = errors.New(
		"GetLowStockQuery must be created via NewGetLowStockQuery constructor",
	)
	// ErrThresholdMustBePositive is returned when the low stock threshold is
	// zero, which would match nothing.
	ErrThresholdMustBePositive = errors.New("low stock threshold must be positive")
)

// GetLowStockQuery finds active inventory records whose usable stock has
// fallen below a threshold. Feeds replenishment alerts and the low stock
// report.
//
// Example:
//
//	threshold, _ := kernel.QuantityFromString("25")
//	query, err := queries.NewGetLowStockQuery(threshold)
//	if err != nil {
//	    return err
//	}
//
//	records, err := queries.NewGetLowStockQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to check stock levels: %w", err)
//	}
type GetLowStockQuery struct {
	threshold kernel.Quantity

	guard guard.ConstructorGuard
}

// NewGetLowStockQuery creates a query for inventories with usable stock
// strictly below the given threshold.
func NewGetLowStockQuery(threshold kernel.Quantity) (GetLowStockQuery, error) {
	if !threshold.IsPositive() {
		return GetLowStockQuery{}, ErrThresholdMustBePositive
	}
	return GetLowStockQuery{
		threshold: threshold,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Threshold returns the usable stock level below which a record is reported.
func (q GetLowStockQuery) Threshold() kernel.Quantity {
	return q.threshold
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetLowStockQueryIsNotConstructed if validation fails.
func (q GetLowStockQuery) Validate() error {
	return q.guard.Validate(ErrGetLowStockQueryIsNotConstructed)
}

// GetLowStockQueryResponse represents one inventory record running low.
type GetLowStockQueryResponse struct {
	InventoryID kernel.UUID
	WarehouseID kernel.UUID
	ItemID      kernel.UUID
	Usable      kernel.Quantity
}
