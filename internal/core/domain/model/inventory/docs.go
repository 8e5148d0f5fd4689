// Package inventory contains the Inventory aggregate: the stock a warehouse
// holds for a single relief item, split into four mutually exclusive quantity
// buckets (usable, reserved, defective, expired).
//
// Only the usable bucket is available for new allocations. Package creation
// moves stock usable→reserved; intake consumes reserved on the source side and
// credits the receiving inventory's buckets. The bucket sum always equals the
// total physical stock known for that warehouse/item pair.
package inventory
