package order

import (
	"slices"

	"fulfillment/internal/pkg/errs"
)

var lifecycleTargets = []Status{Draft, Confirmed, Approved, Rejected, Cancelled, Shipped, Delivered, Invoiced}

// allowedTransitions lists, per current status, the targets an action may request.
// The "none" action is legal from every status and is not listed.
var allowedTransitions = map[Status][]Status{
	Draft:              {Draft, Confirmed, Approved, Rejected, Cancelled, AdminMode, AnyMode},
	Confirmed:          {Draft, Approved, Rejected, Cancelled, Shipped, AdminMode, AnyMode},
	Approved:           {Confirmed, Shipped, Cancelled, AdminMode, AnyMode},
	PartiallyShipped:   {Shipped, Delivered},
	Shipped:            {Shipped, Delivered, Invoiced},
	Delivered:          {Shipped, Delivered, Invoiced},
	PartiallyDelivered: {Shipped, Delivered, Invoiced},
	PartiallyInvoiced:  {Shipped, Delivered, Invoiced},
	Invoiced:           {},
	Rejected:           {},
	Cancelled:          {},
	AdminMode:          append(slices.Clone(lifecycleTargets), AnyMode),
	AnyMode:            append(slices.Clone(lifecycleTargets), AdminMode),
}

// Guard decides whether action may be requested while the order is in status s
// and returns the requested target. It does not mutate anything.
//
// The "none" action always succeeds with target None.
func (s Status) Guard(action Action) (Status, error) {
	if err := action.Validate(); err != nil {
		return Unknown, err
	}
	target := action.Target()
	if action == ActionNone {
		return None, nil
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewTransitionNotAllowedError(s.String(), target.String())
	}
	return target, nil
}

// CanTransitionTo reports whether target is in the allowed set of s.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(allowedTransitions[s], target)
}

// AllowedTargets returns a copy of the targets reachable from s.
func (s Status) AllowedTargets() []Status {
	return slices.Clone(allowedTransitions[s])
}
