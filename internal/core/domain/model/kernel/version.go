package kernel

import (
	"fmt"

	"relief/internal/pkg/errs"
)

// initialVersion is the version every freshly created entity starts at.
const initialVersion int64 = 1

// Version is the optimistic concurrency counter carried by every mutable
// persisted entity. It starts at 1 and advances by exactly 1 per successful
// guarded update. The zero value is invalid: a record read back with version 0
// indicates a data-integrity defect upstream, not a normal conflict.
//
// Version numbers only advance through the guarded-update path in the
// persistence adapter; domain code never sets them directly.
type Version struct {
	number int64
}

// NewVersion returns the initial version for a newly created entity.
func NewVersion() Version {
	return Version{number: initialVersion}
}

// RestoreVersion reconstructs a Version from persistence.
func RestoreVersion(number int64) (Version, error) {
	if number < initialVersion {
		return Version{}, errs.NewValueIsInvalidErrorWithCause(
			"version",
			fmt.Errorf("%d is below the initial version %d", number, initialVersion),
		)
	}
	return Version{number: number}, nil
}

// Validate returns an error for zero-value (unset) versions.
func (v Version) Validate() error {
	if v.number < initialVersion {
		return errs.NewValueIsRequiredError("version")
	}
	return nil
}

// Next returns the version a guarded update is expected to persist.
func (v Version) Next() Version {
	return Version{number: v.number + 1}
}

// Int64 returns the raw counter for persistence mapping.
func (v Version) Int64() int64 {
	return v.number
}

// IsEqual reports whether two versions carry the same counter.
func (v Version) IsEqual(other Version) bool {
	return v.number == other.number
}
