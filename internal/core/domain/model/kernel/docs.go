// Package kernel contains shared value objects used across all domain
// aggregates: UUID identity, fixed-point stock Quantity, and the optimistic
// concurrency Version counter.
//
// All kernel types are immutable value objects. Their zero values are invalid
// and must be constructed through the provided factory functions.
package kernel
