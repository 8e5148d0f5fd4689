package http

import "time"

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ReviewRequestRequest carries a review decision for a relief request.
type ReviewRequestRequest struct {
	Reviewer string `json:"reviewer"`
	Approve  bool   `json:"approve"`
}

// PackageLineRequest is one allocation line of a new package.
type PackageLineRequest struct {
	ItemID string `json:"itemId"`
	Qty    string `json:"qty"`
}

// CreatePackageRequest carries the data for assembling a new package.
type CreatePackageRequest struct {
	RequestID       string               `json:"requestId"`
	FromWarehouseID string               `json:"fromWarehouseId"`
	ToWarehouseID   string               `json:"toWarehouseId"`
	Lines           []PackageLineRequest `json:"lines"`
}

// CreatePackageResponse returns the identifier of the assembled package.
type CreatePackageResponse struct {
	PackageID string `json:"packageId"`
}

// IntakeLineRequest is one received line of a package intake, split by
// condition. Location IDs are optional put-away hints.
type IntakeLineRequest struct {
	ItemID              string  `json:"itemId"`
	Usable              string  `json:"usable"`
	Defective           string  `json:"defective"`
	Expired             string  `json:"expired"`
	UsableLocationID    *string `json:"usableLocationId,omitempty"`
	DefectiveLocationID *string `json:"defectiveLocationId,omitempty"`
	ExpiredLocationID   *string `json:"expiredLocationId,omitempty"`
}

// RecordIntakeRequest carries the received goods for a dispatched package.
type RecordIntakeRequest struct {
	Lines []IntakeLineRequest `json:"lines"`
}

// Package is the read model returned by the package listing.
type Package struct {
	ID            string     `json:"id"`
	RequestID     string     `json:"requestId"`
	ToInventoryID string     `json:"toInventoryId"`
	Status        string     `json:"status"`
	DispatchedAt  *time.Time `json:"dispatchedAt,omitempty"`
}

// LowStockRecord is one inventory record below the replenishment threshold.
type LowStockRecord struct {
	InventoryID string `json:"inventoryId"`
	WarehouseID string `json:"warehouseId"`
	ItemID      string `json:"itemId"`
	Usable      string `json:"usable"`
}
