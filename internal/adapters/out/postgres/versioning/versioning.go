// Package versioning implements the guarded update at the heart of the
// optimistic concurrency scheme. Every mutable row carries a version column;
// an update is conditioned on the version the caller read and bumps it by one
// in the same statement. A concurrent writer that committed first leaves the
// condition unsatisfiable, the update matches zero rows, and the caller gets
// a stale version conflict instead of silently overwriting.
package versioning

import (
	"context"
	"log/slog"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/pkg/errs"

	"gorm.io/gorm"
)

// GuardedUpdate applies updates to the row matched by key, but only if the
// stored version still equals the version the caller read. The version column
// is advanced to version+1 as part of the same UPDATE.
//
// Returns errs.ErrStaleVersion (as a *errs.StaleVersionError carrying
// entityName and id) when the guarded update matches no row because a
// concurrent writer got there first. Missing rows surface the same way; the
// caller cannot tell them apart, and does not need to.
//
// Rows whose version predates the versioning scheme are updated unguarded
// with a warning, so legacy data stays writable.
func GuardedUpdate(
	ctx context.Context,
	db *gorm.DB,
	model any,
	entityName string,
	id any,
	key map[string]any,
	version kernel.Version,
	updates map[string]any,
) error {
	if err := version.Validate(); err != nil {
		slog.WarnContext(ctx, "updating row without version guard",
			"entity", entityName, "id", id)

		result := db.WithContext(ctx).Model(model).Where(key).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError(entityName, id)
		}
		return nil
	}

	guarded := make(map[string]any, len(updates)+1)
	for column, value := range updates {
		guarded[column] = value
	}
	guarded["version"] = version.Next().Int64()

	result := db.WithContext(ctx).
		Model(model).
		Where(key).
		Where("version = ?", version.Int64()).
		Updates(guarded)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewStaleVersionError(entityName, id, version.Int64())
	}

	return nil
}
