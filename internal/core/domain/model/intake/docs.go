// Package intake contains the Intake aggregate: the receipt of a dispatched
// relief package at its destination inventory. Each intake item splits the
// received quantity into usable/defective/expired portions with up to three
// physical storage locations.
package intake
