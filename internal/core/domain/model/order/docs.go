// Package order provides the Order aggregate of the fulfillment ledger and the pure
// rules around it.
//
// The package includes:
//   - Order: the aggregate root owning shipment, delivery, and invoice movement rows and payments
//   - Status and Action: the closed header status and action enumerations
//   - Status.Guard: the static transition table consulted before any mutation
//   - ComputeStatus: the pure derivation of the header status from posted totals
//   - Stage and StageConfig: which collection, fields, and sequence namespace a fulfillment action uses
//   - Movement: a row with its own Draft -> Posted -> Cancelled lifecycle
//   - Payment and Settlement: the paid/due axis, independent of fulfillment status
//
// Key business rules:
//   - only Posted rows count toward totals
//   - a fulfillment action may not exceed the remaining capacity of its stage
//   - once quantity is posted, the header status is always derived, never set
//   - cancelling a posted row can move the derived status backwards
package order
