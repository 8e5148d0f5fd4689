package queries

import (
	"context"
	"database/sql"
	"time"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/core/domain/model/reliefpkg"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPackagesQueryHandler retrieves package read models from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetPackagesQueryHandler struct {
	db *gorm.DB
}

// NewGetPackagesQueryHandler creates a handler for package retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetPackagesQueryHandler(db *gorm.DB) GetPackagesQueryHandler {
	return GetPackagesQueryHandler{db: db}
}

// Handle executes the query to retrieve packages, applying the status filter
// when the query carries one. Results are sorted by ID for consistent output.
func (h GetPackagesQueryHandler) Handle(
	ctx context.Context,
	query GetPackagesQuery,
) ([]GetPackagesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	packages := make([]GetPackagesQueryResponse, 0)

	sqlText := `
		SELECT
			id,
			request_id,
			to_inventory_id,
			status,
			dispatched_at
		FROM packages
		ORDER BY id
	`
	args := make([]any, 0, 1)
	if status, ok := query.Status(); ok {
		sqlText = `
			SELECT
				id,
				request_id,
				to_inventory_id,
				status,
				dispatched_at
			FROM packages
			WHERE status = ?
			ORDER BY id
		`
		args = append(args, status)
	}

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var pkg GetPackagesQueryResponse
		var id, requestID, toInventoryID uuid.UUID
		var status int
		var dispatchedAt sql.NullTime

		err = rows.Scan(
			&id,
			&requestID,
			&toInventoryID,
			&status,
			&dispatchedAt,
		)
		if err != nil {
			return nil, err
		}

		pkg.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		pkg.RequestID, err = kernel.UUIDFromBytes(requestID[:])
		if err != nil {
			return nil, err
		}
		pkg.ToInventoryID, err = kernel.UUIDFromBytes(toInventoryID[:])
		if err != nil {
			return nil, err
		}

		pkg.Status = reliefpkg.Status(status)
		if dispatchedAt.Valid {
			at := dispatchedAt.Time.In(time.UTC)
			pkg.DispatchedAt = &at
		}
		packages = append(packages, pkg)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return packages, nil
}
