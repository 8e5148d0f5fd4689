package queries

import (
	"context"

	"relief/internal/core/domain/model/inventory"
	"relief/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetLowStockQueryHandler retrieves low stock inventory records from the
// database. Uses direct SQL queries for optimal read performance in the CQRS
// pattern.
type GetLowStockQueryHandler struct {
	db *gorm.DB
}

// NewGetLowStockQueryHandler creates a handler for low stock queries.
// Requires a GORM database connection for query execution.
func NewGetLowStockQueryHandler(db *gorm.DB) GetLowStockQueryHandler {
	return GetLowStockQueryHandler{db: db}
}

// Handle executes the query to retrieve active inventories with usable stock
// strictly below the threshold. Inactive records are not reported; they hold
// no stock worth replenishing. Results are sorted by usable quantity so the
// emptiest records come first.
func (h GetLowStockQueryHandler) Handle(
	ctx context.Context,
	query GetLowStockQuery,
) ([]GetLowStockQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records := make([]GetLowStockQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			warehouse_id,
			item_id,
			usable_qty
		FROM inventories
		WHERE status = ? AND usable_qty < ?
		ORDER BY usable_qty, id
	`, int(inventory.Active), query.Threshold().Decimal()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var record GetLowStockQueryResponse
		var id, warehouseID, itemID uuid.UUID
		var usable decimal.Decimal

		err = rows.Scan(
			&id,
			&warehouseID,
			&itemID,
			&usable,
		)
		if err != nil {
			return nil, err
		}

		record.InventoryID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		record.WarehouseID, err = kernel.UUIDFromBytes(warehouseID[:])
		if err != nil {
			return nil, err
		}
		record.ItemID, err = kernel.UUIDFromBytes(itemID[:])
		if err != nil {
			return nil, err
		}

		record.Usable, err = kernel.NewQuantity(usable)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
