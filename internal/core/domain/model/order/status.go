package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the header status of an order.
//
// Lifecycle statuses (Draft, Confirmed, Approved, Rejected, Cancelled, AdminMode, AnyMode)
// are set explicitly through actions. Fulfillment statuses (Shipped, PartiallyShipped,
// Delivered, PartiallyDelivered, Invoiced, PartiallyInvoiced) are derived by ComputeStatus
// from posted quantities and are never set directly.
//
//	Draft ──> Confirmed ──> Approved ──> (ship) ──> PartiallyShipped / Shipped
//	                                         ──> (deliver) ──> PartiallyDelivered / Delivered
//	                                         ──> (invoice) ──> PartiallyInvoiced / Invoiced
//
// Values are persisted as integers; never reorder the constants.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota
	Draft
	Confirmed
	Approved
	Rejected
	Shipped
	PartiallyShipped
	Delivered
	PartiallyDelivered
	Invoiced
	PartiallyInvoiced
	Cancelled
	AdminMode
	AnyMode
	// None is the target of the "none" action. It is never stored on an order.
	None
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "Unknown",
		Draft:              "Draft",
		Confirmed:          "Confirmed",
		Approved:           "Approved",
		Rejected:           "Rejected",
		Shipped:            "Shipped",
		PartiallyShipped:   "PartiallyShipped",
		Delivered:          "Delivered",
		PartiallyDelivered: "PartiallyDelivered",
		Invoiced:           "Invoiced",
		PartiallyInvoiced:  "PartiallyInvoiced",
		Cancelled:          "Cancelled",
		AdminMode:          "AdminMode",
		AnyMode:            "AnyMode",
		None:               "None",
	}
}

// Validate checks that s may be stored on an order. Unknown and None are rejected.
func (s Status) Validate() error {
	if s <= Unknown || s >= None {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the status name, or "Unknown" for values outside the enum.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus resolves a status name case-insensitively.
func ParseStatus(name string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(str, name) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", name))
}

// IsTerminal reports whether no action may leave s.
func (s Status) IsTerminal() bool {
	return s == Invoiced || s == Cancelled || s == Rejected
}

// IsDerived reports whether s is produced by ComputeStatus rather than set by an action.
func (s Status) IsDerived() bool {
	switch s {
	case Confirmed, Shipped, PartiallyShipped, Delivered, PartiallyDelivered, Invoiced, PartiallyInvoiced:
		return true
	}
	return false
}

// ValidateInitial checks that s is a legal status for a newly created order.
func (s Status) ValidateInitial() error {
	if s != Draft && s != Confirmed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid initial status", s.String()),
		)
	}
	return nil
}
