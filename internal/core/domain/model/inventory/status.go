package inventory

import (
	"fmt"

	"relief/internal/pkg/errs"
)

// Status marks whether an inventory record participates in allocation.
// Inactive records are kept for history but are never picked as allocation
// sources or package destinations.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Active inventory can source allocations and receive intake.
	Active

	// Inactive inventory is excluded from the fulfillment workflow.
	Inactive
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Active:   "Active",
		Inactive: "Inactive",
	}
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s != Active && s != Inactive {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid inventory status", s),
		)
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
