package request

import (
	"errors"
	"fmt"
	"time"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/pkg/guard"
)

// Domain errors for relief request operations.
var (
	// ErrRequestIsNotConstructed is returned when using a Request that
	// bypassed its constructors.
	ErrRequestIsNotConstructed = errors.New(
		"Request must be created via NewRequest or RestoreRequest",
	)
	// ErrRequestHasNoItems is returned when creating a request without lines.
	ErrRequestHasNoItems = errors.New("request must contain at least one item")
	// ErrItemNotInRequest is returned when an allocation names an item the
	// agency never requested.
	ErrItemNotInRequest = errors.New("item is not part of the request")
	// ErrDuplicateItem is returned when a request carries two lines for the
	// same item.
	ErrDuplicateItem = errors.New("request already contains this item")
	// ErrRequestAlreadyReviewed is returned when reviewing a request that has
	// left the Submitted status.
	ErrRequestAlreadyReviewed = errors.New("request has already been reviewed")
	// ErrRequestNotOpenForFulfillment is returned when creating a package
	// against a request that is not Approved or PartiallyFulfilled.
	ErrRequestNotOpenForFulfillment = errors.New("request is not open for fulfillment")
	// ErrReviewerIsRequired is returned when a review carries no reviewer
	// identity.
	ErrReviewerIsRequired = errors.New("reviewer is required")
)

// Request is the aggregate root for an agency's relief needs list. It owns
// its items and governs the review lifecycle; fulfillment progress lives on
// the items (issued quantities) and is advanced by the package workflow.
type Request struct {
	id       kernel.UUID
	agencyID kernel.UUID
	status   Status
	items    []*Item

	reviewedBy string
	reviewedAt *time.Time

	version kernel.Version

	guard guard.ConstructorGuard
}

// NewRequest creates a Submitted request with the given item lines.
// Duplicate item IDs and empty item lists are rejected.
func NewRequest(id, agencyID kernel.UUID, items []*Item) (*Request, error) {
	req := &Request{
		status:  Submitted,
		version: kernel.NewVersion(),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		req.setID(id),
		req.setAgencyID(agencyID),
		req.setItems(items),
	); err != nil {
		return nil, err
	}

	return req, nil
}

// RestoreRequest reconstructs a Request aggregate from persistence.
func RestoreRequest(
	id, agencyID kernel.UUID,
	status Status,
	items []*Item,
	reviewedBy string,
	reviewedAt *time.Time,
	version kernel.Version,
) (*Request, error) {
	req, err := NewRequest(id, agencyID, items)
	if err != nil {
		return nil, err
	}
	if err = errors.Join(status.Validate(), version.Validate()); err != nil {
		return nil, err
	}

	req.status = status
	req.reviewedBy = reviewedBy
	req.reviewedAt = reviewedAt
	req.version = version
	return req, nil
}

// Validate ensures the aggregate was built through a constructor.
func (r *Request) Validate() error {
	if r == nil {
		return ErrRequestIsNotConstructed
	}
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

// ID returns the request identifier.
func (r *Request) ID() kernel.UUID { return r.id }

// AgencyID returns the requesting agency.
func (r *Request) AgencyID() kernel.UUID { return r.agencyID }

// Status returns the lifecycle status.
func (r *Request) Status() Status { return r.status }

// Items returns the request lines.
func (r *Request) Items() []*Item { return r.items }

// ReviewedBy returns the reviewer identity, empty before review.
func (r *Request) ReviewedBy() string { return r.reviewedBy }

// ReviewedAt returns the review timestamp, nil before review.
func (r *Request) ReviewedAt() *time.Time { return r.reviewedAt }

// Version returns the optimistic concurrency counter of the request header.
func (r *Request) Version() kernel.Version { return r.version }

// Item finds the request line for the given relief item.
// Returns ErrItemNotInRequest when the agency never asked for that item.
func (r *Request) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range r.items {
		if item.ItemID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, fmt.Errorf("%w: item %s in request %s", ErrItemNotInRequest, itemID, r.id)
}

// Approve marks a Submitted request as Approved, recording who reviewed it
// and when. Fails with ErrRequestAlreadyReviewed for any other status.
func (r *Request) Approve(reviewer string, at time.Time) error {
	return r.review(Approved, reviewer, at)
}

// Reject marks a Submitted request as Rejected, recording who reviewed it and
// when. Rejected is a final state.
func (r *Request) Reject(reviewer string, at time.Time) error {
	return r.review(Rejected, reviewer, at)
}

// ValidateOpenForFulfillment checks that packages may be created against this
// request (status Approved or PartiallyFulfilled).
func (r *Request) ValidateOpenForFulfillment() error {
	if err := r.Validate(); err != nil {
		return err
	}
	return r.status.ValidateFulfillable()
}

// RecordFulfillment advances the lifecycle after a package allocation: the
// request becomes Closed once every line is fully issued, otherwise
// PartiallyFulfilled.
func (r *Request) RecordFulfillment() error {
	if err := r.ValidateOpenForFulfillment(); err != nil {
		return err
	}

	for _, item := range r.items {
		if !item.IsFullyIssued() {
			r.status = PartiallyFulfilled
			return nil
		}
	}

	r.status = Closed
	return nil
}

func (r *Request) review(decision Status, reviewer string, at time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if reviewer == "" {
		return ErrReviewerIsRequired
	}
	if err := r.status.ValidateReview(); err != nil {
		return err
	}

	r.status = decision
	r.reviewedBy = reviewer
	r.reviewedAt = &at
	return nil
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setAgencyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.agencyID = id
	return nil
}

func (r *Request) setItems(items []*Item) error {
	if len(items) == 0 {
		return ErrRequestHasNoItems
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		key := item.ItemID().String()
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: item %s", ErrDuplicateItem, key)
		}
		seen[key] = struct{}{}
	}

	r.items = items
	return nil
}
