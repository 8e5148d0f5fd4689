package ports

import (
	"context"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/core/domain/model/request"
)

// RequestRepository persists ReliefRequest aggregates with their items.
// Update writes the header and every dirty item row through the guarded
// update path; each row carries its own version.
type RequestRepository interface {
	// Add saves a new request and its items.
	Add(ctx context.Context, aggregate *request.Request) error

	// Update saves request header and item changes via guarded updates.
	Update(ctx context.Context, aggregate *request.Request) error

	// Get retrieves a request with all of its items.
	Get(ctx context.Context, id kernel.UUID) (*request.Request, error)
}
