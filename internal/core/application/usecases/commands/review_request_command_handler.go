package commands

import (
	"context"
	"time"
)

// ReviewRequestCommandHandler applies a review decision to a submitted
// request. Approval opens the request for fulfillment; rejection is final.
type ReviewRequestCommandHandler struct {
	uowFactory ReviewUoWFactory
}

// NewReviewRequestCommandHandler creates a handler for request review.
func NewReviewRequestCommandHandler(uowFactory ReviewUoWFactory) ReviewRequestCommandHandler {
	return ReviewRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the review command. Fails for requests that have already
// left the Submitted status.
func (h *ReviewRequestCommandHandler) Handle(ctx context.Context, cmd ReviewRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.RequestRepository()
	req, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	now := time.Now()
	if cmd.Approve() {
		err = req.Approve(cmd.Reviewer(), now)
	} else {
		err = req.Reject(cmd.Reviewer(), now)
	}
	if err != nil {
		return err
	}

	if err = requestRepo.Update(ctx, req); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
