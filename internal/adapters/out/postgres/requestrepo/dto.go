// Package requestrepo provides data transfer objects and mapping functions
// for relief request persistence. The request header and each item line are
// separate rows, each carrying its own version for the guarded update.
package requestrepo

import (
	"time"

	"relief/internal/core/domain/model/kernel"
	"relief/internal/core/domain/model/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestDTO represents the database structure for the request header.
type RequestDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	AgencyID uuid.UUID `gorm:"type:uuid;index"`
	Status   int       `gorm:"index"`

	ReviewedBy string
	ReviewedAt *time.Time

	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for request headers.
func (RequestDTO) TableName() string {
	return "relief_requests"
}

// RequestItemDTO represents one request line. Two packages issuing against
// the same line contend on this row's version.
type RequestItemDTO struct {
	RequestID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;primaryKey"`

	RequestedQty decimal.Decimal `gorm:"type:decimal(12,2)"`
	IssuedQty    decimal.Decimal `gorm:"type:decimal(12,2)"`

	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for request lines.
func (RequestItemDTO) TableName() string {
	return "relief_request_items"
}

// fromDomain converts a request aggregate to its header and line rows.
func fromDomain(aggregate *request.Request) (RequestDTO, []RequestItemDTO) {
	header := RequestDTO{
		ID:         aggregate.ID().Bytes(),
		AgencyID:   aggregate.AgencyID().Bytes(),
		Status:     int(aggregate.Status()),
		ReviewedBy: aggregate.ReviewedBy(),
		ReviewedAt: aggregate.ReviewedAt(),
		Version:    aggregate.Version().Int64(),
	}

	items := make([]RequestItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, RequestItemDTO{
			RequestID:    aggregate.ID().Bytes(),
			ItemID:       item.ItemID().Bytes(),
			RequestedQty: item.Requested().Decimal(),
			IssuedQty:    item.Issued().Decimal(),
			Version:      item.Version().Int64(),
		})
	}

	return header, items
}

// toDomain converts header and line rows to a request aggregate.
func toDomain(header RequestDTO, itemDTOs []RequestItemDTO) (*request.Request, error) {
	id, err := kernel.UUIDFromBytes(header.ID[:])
	if err != nil {
		return nil, err
	}
	agencyID, err := kernel.UUIDFromBytes(header.AgencyID[:])
	if err != nil {
		return nil, err
	}
	version, err := kernel.RestoreVersion(header.Version)
	if err != nil {
		return nil, err
	}

	items := make([]*request.Item, 0, len(itemDTOs))
	for _, dto := range itemDTOs {
		item, itemErr := itemToDomain(dto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return request.RestoreRequest(
		id, agencyID,
		request.Status(header.Status),
		items,
		header.ReviewedBy, header.ReviewedAt,
		version,
	)
}

func itemToDomain(dto RequestItemDTO) (*request.Item, error) {
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}
	requested, err := kernel.NewQuantity(dto.RequestedQty)
	if err != nil {
		return nil, err
	}
	issued, err := kernel.NewQuantity(dto.IssuedQty)
	if err != nil {
		return nil, err
	}
	version, err := kernel.RestoreVersion(dto.Version)
	if err != nil {
		return nil, err
	}

	return request.RestoreItem(itemID, requested, issued, version)
}
