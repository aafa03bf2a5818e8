// Package kernel provides the shared value objects of the fulfillment domain.
//
// The package includes:
//   - UUID: identifier value object for orders, movement rows, and payments
//   - Quantity: a non-negative decimal amount held at two decimal places,
//     used for ordered/shipped/delivered/invoiced quantities and for money
//
// Values are immutable and safe for concurrent use. Their zero values are either
// invalid (UUID) or the neutral element (Quantity zero), never half-initialised.
package kernel
