package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")

	// ErrOrderIsArchived is the cause of every guard violation on an archived order.
	ErrOrderIsArchived = errors.New("order is archived")

	// ErrOrderHasPostings is the cause of a guard violation when an explicit lifecycle
	// change or a deletion is requested after quantity has been posted.
	ErrOrderHasPostings = errors.New("order has posted movements")

	// ErrOrderIsClosed is the cause of a guard violation when a draft row is posted
	// on a rejected or cancelled order.
	ErrOrderIsClosed = errors.New("order is closed")
)

// Order is the aggregate root of the fulfillment ledger. It owns the three movement
// collections and the payment collection and is always persisted as one unit.
//
// Order maintains these invariants:
//   - 0 <= invoiced <= delivered <= shipped <= ordered, counting Posted rows only
//   - while any row is posted, status equals ComputeStatus(Totals())
//   - without postings, status is an explicitly set lifecycle state
//   - archived orders accept no mutation
type Order struct {
	id          kernel.UUID
	number      string
	customerRef string
	orderedQty  kernel.Quantity
	amount      kernel.Quantity
	currency    string
	status      Status
	settlement  Settlement
	archived    bool

	shipments  []*Movement
	deliveries []*Movement
	invoices   []*Movement
	payments   []*Payment

	// version is the optimistic concurrency token, 0 until first persisted.
	version   int64
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// MovementInput carries the caller-supplied data of a fulfillment action.
// Quantity is taken as requested, sign included: a non-positive value is a
// capacity error reported only after the guard has accepted the action.
type MovementInput struct {
	Quantity  decimal.Decimal
	Mode      string
	Reference string
	// Date defaults to the time of the request when zero.
	Date     time.Time
	AutoPost bool
}

// Snapshot is the persisted state RestoreOrder rebuilds an Order from.
type Snapshot struct {
	ID          kernel.UUID
	Number      string
	CustomerRef string
	OrderedQty  kernel.Quantity
	Amount      kernel.Quantity
	Currency    string
	Status      Status
	Settlement  Settlement
	Archived    bool
	Shipments   []*Movement
	Deliveries  []*Movement
	Invoices    []*Movement
	Payments    []*Payment
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrder creates an order in the caller-chosen initial status (Draft or Confirmed)
// with no movements and no payments.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "SO-000001", "CUST-7",
//	    kernel.MustQuantity("10"), kernel.MustQuantity("250.00"), "EUR", order.Confirmed, now)
func NewOrder(
	id kernel.UUID,
	number, customerRef string,
	orderedQty, amount kernel.Quantity,
	currency string,
	initial Status,
	now time.Time,
) (*Order, error) {
	o := &Order{
		amount:     amount,
		settlement: Unpaid,
		createdAt:  now.UTC(),
		updatedAt:  now.UTC(),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomerRef(customerRef),
		o.setOrderedQty(orderedQty),
		o.setCurrency(currency),
		initial.ValidateInitial(),
	); err != nil {
		return nil, err
	}
	o.status = initial

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. Quantity invariants are not
// re-checked: cancelling a posted row can leave historic totals out of order.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		customerRef: s.CustomerRef,
		amount:      s.Amount,
		archived:    s.Archived,
		shipments:   slices.Clone(s.Shipments),
		deliveries:  slices.Clone(s.Deliveries),
		invoices:    slices.Clone(s.Invoices),
		payments:    slices.Clone(s.Payments),
		version:     s.Version,
		createdAt:   s.CreatedAt.UTC(),
		updatedAt:   s.UpdatedAt.UTC(),
		guard:       guard.NewConstructorGuard(),
	}

	validationErrs := []error{
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setOrderedQty(s.OrderedQty),
		o.setCurrency(s.Currency),
		s.Status.Validate(),
		s.Settlement.Validate(),
	}
	for _, rows := range [][]*Movement{o.shipments, o.deliveries, o.invoices} {
		for _, m := range rows {
			validationErrs = append(validationErrs, m.Validate())
		}
	}
	for _, p := range o.payments {
		validationErrs = append(validationErrs, p.Validate())
	}
	if err := errors.Join(validationErrs...); err != nil {
		return nil, err
	}
	o.status = s.Status
	o.settlement = s.Settlement

	return o, nil
}

// Validate ensures the order was built through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }

func (o *Order) Number() string { return o.number }

func (o *Order) CustomerRef() string { return o.customerRef }

func (o *Order) OrderedQty() kernel.Quantity { return o.orderedQty }

func (o *Order) Amount() kernel.Quantity { return o.amount }

func (o *Order) Currency() string { return o.currency }

func (o *Order) Status() Status { return o.status }

func (o *Order) Settlement() Settlement { return o.settlement }

func (o *Order) IsArchived() bool { return o.archived }

func (o *Order) Version() int64 { return o.version }

func (o *Order) CreatedAt() time.Time { return o.createdAt }

func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Movements returns a copy of the stage's rows in insertion order.
func (o *Order) Movements(stage Stage) []*Movement {
	return slices.Clone(*o.collection(stage))
}

func (o *Order) Shipments() []*Movement { return o.Movements(StageShipments) }

func (o *Order) Deliveries() []*Movement { return o.Movements(StageDeliveries) }

func (o *Order) Invoices() []*Movement { return o.Movements(StageInvoices) }

func (o *Order) Payments() []*Payment { return slices.Clone(o.payments) }

// Totals sums Posted rows per stage. Draft and Cancelled rows never count.
func (o *Order) Totals() Totals {
	return Totals{
		Ordered:   o.orderedQty,
		Shipped:   sumPosted(o.shipments),
		Delivered: sumPosted(o.deliveries),
		Invoiced:  sumPosted(o.invoices),
	}
}

// Remaining returns the capacity left on the stage.
func (o *Order) Remaining(stage Stage) kernel.Quantity {
	return o.Totals().Remaining(stage)
}

// Paid sums all payment amounts.
func (o *Order) Paid() kernel.Quantity {
	paid := kernel.ZeroQuantity()
	for _, p := range o.payments {
		paid = paid.Add(p.Amount())
	}
	return paid
}

// HasPostings reports whether any row in any stage is Posted.
func (o *Order) HasPostings() bool {
	for _, rows := range [][]*Movement{o.shipments, o.deliveries, o.invoices} {
		for _, m := range rows {
			if m.IsPosted() {
				return true
			}
		}
	}
	return false
}

// TriggerAction applies a lifecycle-only action. Fulfillment actions pass the guard
// but need movement data, so they fail with a validation error here. Once quantity
// has been posted the status is derived and explicit lifecycle changes are refused.
func (o *Order) TriggerAction(action Action, now time.Time) error {
	target, err := o.status.Guard(action)
	if err != nil {
		return err
	}
	if target == None {
		return nil
	}
	if err = o.ensureMutable(target); err != nil {
		return err
	}
	if action.IsFulfillment() {
		return errs.NewValueIsRequiredErrorWithCause(
			"quantity",
			fmt.Errorf("%s records a movement and needs quantity data", action.String()),
		)
	}
	if o.HasPostings() {
		return errs.NewTransitionNotAllowedErrorWithCause(o.status.String(), target.String(), ErrOrderHasPostings)
	}

	o.status = target
	o.touch(now)
	return nil
}

// PrepareMovement runs every check of a fulfillment action that does not need a
// movement code: the guard, the stage lookup, required fields, and capacity.
// It returns the stage configuration whose namespace the caller draws the code from.
func (o *Order) PrepareMovement(action Action, in MovementInput) (StageConfig, error) {
	target, err := o.status.Guard(action)
	if err != nil {
		return StageConfig{}, err
	}
	if err = o.ensureMutable(target); err != nil {
		return StageConfig{}, err
	}
	cfg, err := ConfigForAction(action)
	if err != nil {
		return StageConfig{}, err
	}
	if strings.TrimSpace(in.Mode) == "" {
		return StageConfig{}, errs.NewValueIsRequiredError(cfg.ModeField)
	}
	if err = o.checkCapacity(cfg.Stage, in.Quantity); err != nil {
		return StageConfig{}, err
	}
	return cfg, nil
}

// RecordMovement appends a new row for a fulfillment action. It repeats every
// check of PrepareMovement, so a failure leaves the order unchanged. When the
// row is auto-posted the header status is recomputed from the new totals.
func (o *Order) RecordMovement(
	action Action,
	rowID kernel.UUID,
	code string,
	in MovementInput,
	now time.Time,
) (*Movement, error) {
	cfg, err := o.PrepareMovement(action, in)
	if err != nil {
		return nil, err
	}
	if _, found := o.findMovement(cfg.Stage, rowID); found {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"row id",
			fmt.Errorf("%s already exists in %s", rowID.String(), cfg.Stage.String()),
		)
	}

	date := in.Date
	if date.IsZero() {
		date = now
	}
	qty, err := kernel.NewQuantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	m, err := NewMovement(rowID, code, qty, in.Mode, in.Reference, date, in.AutoPost)
	if err != nil {
		return nil, err
	}

	rows := o.collection(cfg.Stage)
	*rows = append(*rows, m)
	if in.AutoPost {
		o.applyDerivedStatus()
	}
	o.touch(now)

	return m, nil
}

// PostMovement moves a Draft row to Posted and recomputes the status.
// Posting a Posted or Cancelled row is a no-op.
func (o *Order) PostMovement(stage Stage, rowID kernel.UUID, now time.Time) error {
	m, err := o.mutableMovement(stage, rowID)
	if err != nil {
		return err
	}
	if m.Status() != MovementDraft {
		return nil
	}
	if o.status == Rejected || o.status == Cancelled {
		cfg, cfgErr := stage.Config()
		if cfgErr != nil {
			return cfgErr
		}
		return errs.NewTransitionNotAllowedErrorWithCause(
			o.status.String(), cfg.Action.Target().String(), ErrOrderIsClosed,
		)
	}
	if err = o.checkCapacity(stage, m.Quantity().Decimal()); err != nil {
		return err
	}

	m.Post()
	o.applyDerivedStatus()
	o.touch(now)
	return nil
}

// CancelMovement cancels a row from any state. If the order had postings the
// status is recomputed, which may move it backwards.
func (o *Order) CancelMovement(stage Stage, rowID kernel.UUID, now time.Time) error {
	m, err := o.mutableMovement(stage, rowID)
	if err != nil {
		return err
	}

	hadPostings := o.HasPostings()
	m.Cancel()
	if hadPostings {
		o.applyDerivedStatus()
	}
	o.touch(now)
	return nil
}

// AddPayment appends a payment and recomputes the settlement state.
func (o *Order) AddPayment(p *Payment, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := o.ensureMutable(o.status); err != nil {
		return err
	}
	for _, existing := range o.payments {
		if existing.ID().IsEqual(p.ID()) {
			return errs.NewValueIsInvalidErrorWithCause(
				"payment id",
				fmt.Errorf("%s already exists", p.ID().String()),
			)
		}
	}

	o.payments = append(o.payments, p)
	o.settlement = ComputeSettlement(o.amount, o.Paid())
	o.touch(now)
	return nil
}

// Archive freezes the order. Archiving twice is a no-op.
func (o *Order) Archive(now time.Time) {
	if o.archived {
		return
	}
	o.archived = true
	o.touch(now)
}

// CanBeDeleted refuses orders that have posted movements.
func (o *Order) CanBeDeleted() error {
	if o.HasPostings() {
		return errs.NewTransitionNotAllowedErrorWithCause(o.status.String(), "Deleted", ErrOrderHasPostings)
	}
	return nil
}

// ReconcileStatus repairs a header status that drifted from the posted totals
// and reports whether it changed anything. Orders without postings are left alone.
func (o *Order) ReconcileStatus(now time.Time) bool {
	if !o.HasPostings() {
		return false
	}
	derived := ComputeStatus(o.Totals())
	if derived == o.status {
		return false
	}
	o.status = derived
	o.touch(now)
	return true
}

// AdvanceVersion is called by the repository after a successful versioned write.
func (o *Order) AdvanceVersion() {
	o.version++
}

func (o *Order) applyDerivedStatus() {
	o.status = ComputeStatus(o.Totals())
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now.UTC()
}

func (o *Order) ensureMutable(target Status) error {
	if o.archived {
		return errs.NewTransitionNotAllowedErrorWithCause(o.status.String(), target.String(), ErrOrderIsArchived)
	}
	return nil
}

// checkCapacity accepts a requested quantity in (0, remaining] after rounding.
func (o *Order) checkCapacity(stage Stage, requested decimal.Decimal) error {
	remaining := o.Remaining(stage)
	rounded := requested.Round(kernel.QuantityPlaces)
	if !rounded.IsPositive() || rounded.GreaterThan(remaining.Decimal()) {
		return errs.NewCapacityExceededError(
			stage.String(), rounded.StringFixed(kernel.QuantityPlaces), remaining.String(),
		)
	}
	return nil
}

func (o *Order) mutableMovement(stage Stage, rowID kernel.UUID) (*Movement, error) {
	if err := stage.Validate(); err != nil {
		return nil, err
	}
	if err := o.ensureMutable(o.status); err != nil {
		return nil, err
	}
	m, found := o.findMovement(stage, rowID)
	if !found {
		return nil, errs.NewObjectNotFoundError(stage.String()+" row", rowID.String())
	}
	return m, nil
}

func (o *Order) findMovement(stage Stage, rowID kernel.UUID) (*Movement, bool) {
	for _, m := range *o.collection(stage) {
		if m.ID().IsEqual(rowID) {
			return m, true
		}
	}
	return nil, false
}

func (o *Order) collection(stage Stage) *[]*Movement {
	switch stage {
	case StageShipments:
		return &o.shipments
	case StageDeliveries:
		return &o.deliveries
	case StageInvoices:
		return &o.invoices
	case StageUnknown:
	}
	empty := []*Movement{}
	return &empty
}

func sumPosted(rows []*Movement) kernel.Quantity {
	total := kernel.ZeroQuantity()
	for _, m := range rows {
		if m.IsPosted() {
			total = total.Add(m.Quantity())
		}
	}
	return total
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setCustomerRef(customerRef string) error {
	customerRef = strings.TrimSpace(customerRef)
	if customerRef == "" {
		return errs.NewValueIsRequiredError("customer reference")
	}
	o.customerRef = customerRef
	return nil
}

func (o *Order) setOrderedQty(qty kernel.Quantity) error {
	if !qty.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"ordered quantity is invalid",
			fmt.Errorf("%s is not greater than 0", qty.String()),
		)
	}
	o.orderedQty = qty
	return nil
}

func (o *Order) setCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 || strings.IndexFunc(currency, func(r rune) bool { return r < 'A' || r > 'Z' }) >= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"currency is invalid",
			fmt.Errorf("%q is not an ISO 4217 code", currency),
		)
	}
	o.currency = currency
	return nil
}
