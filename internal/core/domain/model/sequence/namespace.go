// Package sequence names the counters issued by the sequence generator and
// renders their numbers as human-readable codes.
//
// Each namespace has a storage key (the row in the sequences table) and a
// display prefix:
//
//	order     SO-000001
//	shipment  SHP-000001
//	delivery  DLV-000001
//	invoice   INV-000001
package sequence

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Width is the zero-padded digit count of a formatted code.
const Width = 6

type Namespace int

const (
	NamespaceUnknown Namespace = iota
	NamespaceOrder
	NamespaceShipment
	NamespaceDelivery
	NamespaceInvoice
)

type namespaceInfo struct {
	key    string
	prefix string
}

func getNamespaces() map[Namespace]namespaceInfo {
	return map[Namespace]namespaceInfo{
		NamespaceOrder:    {key: "order", prefix: "SO"},
		NamespaceShipment: {key: "shipment", prefix: "SHP"},
		NamespaceDelivery: {key: "delivery", prefix: "DLV"},
		NamespaceInvoice:  {key: "invoice", prefix: "INV"},
	}
}

func (n Namespace) Validate() error {
	if _, ok := getNamespaces()[n]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("namespace", fmt.Errorf("%d is not a valid namespace", n))
	}
	return nil
}

// Key is the persistent counter name.
func (n Namespace) Key() string {
	return getNamespaces()[n].key
}

func (n Namespace) Prefix() string {
	return getNamespaces()[n].prefix
}

func (n Namespace) String() string {
	if info, ok := getNamespaces()[n]; ok {
		return info.key
	}
	return "unknown"
}

// Format renders value as PREFIX-000042. Values wider than Width are not truncated.
func (n Namespace) Format(value int64) (string, error) {
	if err := n.Validate(); err != nil {
		return "", err
	}
	if value <= 0 {
		return "", errs.NewValueIsOutOfRangeError("sequence value", value, 1, "max int64")
	}
	return fmt.Sprintf("%s-%0*d", n.Prefix(), Width, value), nil
}
