package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Action is a caller-requested operation on an order header.
type Action int

const (
	ActionUnknown Action = iota
	ActionApprove
	ActionReject
	ActionConfirm
	ActionShip
	ActionDeliver
	ActionInvoice
	ActionCancel
	ActionAdmin
	ActionAny
	ActionDraft
	ActionNone
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionApprove: "approve",
		ActionReject:  "reject",
		ActionConfirm: "confirm",
		ActionShip:    "ship",
		ActionDeliver: "deliver",
		ActionInvoice: "invoice",
		ActionCancel:  "cancel",
		ActionAdmin:   "admin",
		ActionAny:     "any",
		ActionDraft:   "draft",
		ActionNone:    "none",
	}
}

func getActionTargets() map[Action]Status {
	return map[Action]Status{
		ActionApprove: Approved,
		ActionReject:  Rejected,
		ActionConfirm: Confirmed,
		ActionShip:    Shipped,
		ActionDeliver: Delivered,
		ActionInvoice: Invoiced,
		ActionCancel:  Cancelled,
		ActionAdmin:   AdminMode,
		ActionAny:     AnyMode,
		ActionDraft:   Draft,
		ActionNone:    None,
	}
}

// ParseAction resolves an action name case-insensitively.
func ParseAction(name string) (Action, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for action, str := range getActionStrings() {
		if str == key {
			return action, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a known action", name))
}

func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "unknown"
}

func (a Action) Validate() error {
	if _, ok := getActionTargets()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

// Target returns the status the action requests, or Unknown for an invalid action.
func (a Action) Target() Status {
	if target, ok := getActionTargets()[a]; ok {
		return target
	}
	return Unknown
}

// IsFulfillment reports whether the action records quantity against a stage.
func (a Action) IsFulfillment() bool {
	return a == ActionShip || a == ActionDeliver || a == ActionInvoice
}
