// Package ports defines the outbound interfaces of the application core:
// per-aggregate repositories and the UnitOfWork that binds them to one
// database transaction. Adapters implement these interfaces; the core depends
// only on the contracts.
package ports
