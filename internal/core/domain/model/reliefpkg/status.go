package reliefpkg

import (
	"fmt"

	"relief/internal/pkg/errs"
)

// Status represents the package lifecycle.
//
// State transitions:
//
//	Pending ──> Dispatched ──> Completed
//
// Each transition is one-way; a package can be dispatched and completed at
// most once.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending packages are assembled and awaiting dispatch.
	Pending

	// Dispatched packages are in transit to their destination.
	Dispatched

	// Completed packages have been received at the destination. Final state.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Dispatched: "Dispatched",
		Completed:  "Completed",
	}
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s != Pending && s != Dispatched && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid package status", s),
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

// Dispatch transitions Pending to Dispatched.
func (s Status) Dispatch() (Status, error) {
	if s != Pending {
		return 0, fmt.Errorf("%w: package is %s", ErrPackageNotPending, s)
	}
	return Dispatched, nil
}

// Complete transitions Dispatched to Completed.
func (s Status) Complete() (Status, error) {
	if s != Dispatched {
		return 0, fmt.Errorf("%w: package is %s", ErrPackageNotDispatched, s)
	}
	return Completed, nil
}
