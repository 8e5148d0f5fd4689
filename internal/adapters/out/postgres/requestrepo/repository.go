package requestrepo

import (
	"context"
	"errors"

	"relief/internal/adapters/out/postgres/versioning"
	"relief/internal/core/domain/model/kernel"
	"relief/internal/core/domain/model/request"
	"relief/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRequestRepository implements RequestRepository using GORM.
type GormRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRequestRepository creates a new GORM request repository.
func NewGormRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormRequestRepository {
	return &GormRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new request header and all of its lines.
func (r *GormRequestRepository) Add(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, items := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&header).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the request header and every line through guarded updates.
// Each row is guarded by its own version; any stale row fails the whole
// update so the enclosing transaction rolls back.
func (r *GormRequestRepository) Update(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, items := fromDomain(aggregate)
	err := versioning.GuardedUpdate(
		ctx, r.db, &RequestDTO{},
		"request", aggregate.ID().String(),
		map[string]any{"id": header.ID},
		aggregate.Version(),
		map[string]any{
			"status":      header.Status,
			"reviewed_by": header.ReviewedBy,
			"reviewed_at": header.ReviewedAt,
		},
	)
	if err != nil {
		return err
	}

	for i, item := range items {
		err = versioning.GuardedUpdate(
			ctx, r.db, &RequestItemDTO{},
			"request item", aggregate.ID().String()+"/"+aggregate.Items()[i].ItemID().String(),
			map[string]any{"request_id": item.RequestID, "item_id": item.ItemID},
			aggregate.Items()[i].Version(),
			map[string]any{"issued_qty": item.IssuedQty},
		)
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a request with all of its lines.
func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var header RequestDTO
	if err := r.db.WithContext(ctx).First(&header, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("request", id.String())
		}
		return nil, err
	}

	var items []RequestItemDTO
	err := r.db.WithContext(ctx).
		Order("item_id").
		Find(&items, "request_id = ?", id.Bytes()).
		Error
	if err != nil {
		return nil, err
	}

	return toDomain(header, items)
}
