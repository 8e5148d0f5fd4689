// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"relief/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler declares the narrowest repository set it needs; all writes made
// through one unit of work commit or roll back together.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// InventoryRepoFactory provides access to the inventory repository within a transaction.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// RequestRepoFactory provides access to the request repository within a transaction.
	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	// PackageRepoFactory provides access to the package repository within a transaction.
	PackageRepoFactory interface {
		PackageRepository() ports.PackageRepository
	}

	// IntakeRepoFactory provides access to the intake repository within a transaction.
	IntakeRepoFactory interface {
		IntakeRepository() ports.IntakeRepository
	}

	// ReviewUoW manages transactions for request review operations.
	ReviewUoW interface {
		TxManager
		RequestRepoFactory
	}

	// ReviewUoWFactory creates new review unit of work instances.
	ReviewUoWFactory interface {
		Create() ReviewUoW
	}

	// PackageUoW manages transactions for package-only operations such as
	// dispatch, which changes no quantities.
	PackageUoW interface {
		TxManager
		PackageRepoFactory
	}

	// PackageUoWFactory creates new package unit of work instances.
	PackageUoWFactory interface {
		Create() PackageUoW
	}

	// FulfillmentUoW manages transactions spanning requests, inventories, and
	// packages. Package creation issues request lines, reserves stock, and
	// saves the package in one atomic commit.
	FulfillmentUoW interface {
		TxManager
		InventoryRepoFactory
		RequestRepoFactory
		PackageRepoFactory
	}

	// FulfillmentUoWFactory creates new fulfillment unit of work instances.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}

	// IntakeUoW manages transactions spanning packages, inventories, and
	// intake records. Recording a receipt consumes reservations, credits the
	// destination, completes the package, and saves the intake atomically.
	IntakeUoW interface {
		TxManager
		InventoryRepoFactory
		PackageRepoFactory
		IntakeRepoFactory
	}

	// IntakeUoWFactory creates new intake unit of work instances.
	IntakeUoWFactory interface {
		Create() IntakeUoW
	}
)
