package order

import "fulfillment/internal/core/domain/model/kernel"

// Totals holds the ordered quantity and the posted quantity of each stage.
type Totals struct {
	Ordered   kernel.Quantity
	Shipped   kernel.Quantity
	Delivered kernel.Quantity
	Invoiced  kernel.Quantity
}

// Remaining returns how much the stage can still take:
// shipments ordered-shipped, deliveries shipped-delivered, invoices delivered-invoiced.
// Unknown stages have no capacity.
func (t Totals) Remaining(stage Stage) kernel.Quantity {
	switch stage {
	case StageShipments:
		return t.Ordered.Sub(t.Shipped)
	case StageDeliveries:
		return t.Shipped.Sub(t.Delivered)
	case StageInvoices:
		return t.Delivered.Sub(t.Invoiced)
	case StageUnknown:
	}
	return kernel.ZeroQuantity()
}

// Posted returns the posted total of the stage.
func (t Totals) Posted(stage Stage) kernel.Quantity {
	switch stage {
	case StageShipments:
		return t.Shipped
	case StageDeliveries:
		return t.Delivered
	case StageInvoices:
		return t.Invoiced
	case StageUnknown:
	}
	return kernel.ZeroQuantity()
}

// ComputeStatus derives the header status from posted totals. It is pure; the
// caller assigns the result. The first matching rule wins and the order of the
// rules is significant, including the residual rules after PartiallyInvoiced.
func ComputeStatus(t Totals) Status {
	shippedShort := t.Shipped.LessThan(t.Ordered)

	switch {
	case t.Shipped.IsZero():
		return Confirmed
	case t.Shipped.Equal(t.Ordered):
		return Shipped
	case shippedShort && t.Delivered.IsZero():
		return PartiallyShipped
	case shippedShort && t.Delivered.Equal(t.Shipped) && t.Invoiced.IsZero():
		return Delivered
	case shippedShort && t.Delivered.LessThan(t.Shipped) && t.Invoiced.IsZero():
		return PartiallyDelivered
	case shippedShort && t.Delivered.LessThan(t.Shipped) && t.Invoiced.LessThan(t.Delivered):
		return PartiallyInvoiced
	case t.Delivered.IsZero():
		return Shipped
	case t.Delivered.LessThan(t.Ordered):
		return PartiallyDelivered
	case t.Invoiced.IsZero():
		return Delivered
	case t.Invoiced.LessThan(t.Ordered):
		return PartiallyInvoiced
	default:
		return Invoiced
	}
}
