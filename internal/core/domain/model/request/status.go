package request

import (
	"fmt"

	"relief/internal/pkg/errs"
)

// Status represents the relief request lifecycle. The numeric codes are
// stored as-is and are totally ordered by workflow progression.
//
// State transitions:
//
//	Submitted ──> Approved ──> PartiallyFulfilled ──> Closed
//	     │                                  │
//	     └──> Rejected                      └──────> Closed
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = 0

	// Submitted is the initial status awaiting review.
	Submitted Status = 1

	// Approved requests may be fulfilled by packages.
	Approved Status = 2

	// PartiallyFulfilled requests have had some, but not all, of their
	// requested quantities issued into packages.
	PartiallyFulfilled Status = 3

	// Rejected requests are closed to fulfillment. Final state.
	Rejected Status = 4

	// Closed requests are fully processed. Final state.
	Closed Status = 5
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "Unknown",
		Submitted:          "Submitted",
		Approved:           "Approved",
		PartiallyFulfilled: "PartiallyFulfilled",
		Rejected:           "Rejected",
		Closed:             "Closed",
	}
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s < Submitted || s > Closed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid request status", s),
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

// ValidateReview checks that the request is still awaiting review.
func (s Status) ValidateReview() error {
	if s != Submitted {
		return fmt.Errorf("%w: %s request cannot be reviewed", ErrRequestAlreadyReviewed, s)
	}
	return nil
}

// ValidateFulfillable checks that packages may be created against the
// request. Only Approved and PartiallyFulfilled requests accept packages.
func (s Status) ValidateFulfillable() error {
	if s != Approved && s != PartiallyFulfilled {
		return fmt.Errorf("%w: request is %s", ErrRequestNotOpenForFulfillment, s)
	}
	return nil
}
