// Package request contains the ReliefRequest aggregate: an agency's needs
// list moving through review (Submitted → Approved/Rejected) and fulfillment
// (Approved → PartiallyFulfilled → Closed).
//
// Each request item tracks the requested quantity and the cumulative quantity
// already issued into packages; issuing beyond the requested amount is
// rejected at allocation time.
package request
