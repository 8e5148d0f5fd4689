package commands

import (
	"errors"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/pkg/guard"
)

var (
	ErrReviewRequestCommandIsNotConstructed = errors.New(
		"ReviewRequestCommand must be created via NewReviewRequestCommand constructor",
	)
	ErrReviewerIsRequired = errors.New("reviewer is required")
)

// ReviewRequestCommand represents an approve or reject decision on a
// submitted relief request, recording who made the call.
type ReviewRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	reviewer  string
	approve   bool

	guard guard.ConstructorGuard
}

// NewReviewRequestCommand creates a command to review a request.
// Validates the request ID and requires a reviewer identity.
func NewReviewRequestCommand(requestID kernel.UUID, reviewer string, approve bool) (ReviewRequestCommand, error) {
	cmd := ReviewRequestCommand{
		approve: approve,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRequestID(requestID),
		cmd.setReviewer(reviewer),
	); err != nil {
		return ReviewRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewRequestCommand) Validate() error {
	return c.guard.Validate(ErrReviewRequestCommandIsNotConstructed)
}

// RequestID returns the request under review.
func (c ReviewRequestCommand) RequestID() kernel.UUID { return c.requestID }

// Reviewer returns the identity of the reviewer.
func (c ReviewRequestCommand) Reviewer() string { return c.reviewer }

// Approve reports whether the decision is an approval.
func (c ReviewRequestCommand) Approve() bool { return c.approve }

func (c *ReviewRequestCommand) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requestID = id
	return nil
}

func (c *ReviewRequestCommand) setReviewer(reviewer string) error {
	if reviewer == "" {
		return ErrReviewerIsRequired
	}
	c.reviewer = reviewer
	return nil
}
