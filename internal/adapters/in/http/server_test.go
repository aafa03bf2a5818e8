package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

var now = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

// mockOrderUseCase covers every use case that takes a command and returns the order.
type mockOrderUseCase[C any] struct{ mock.Mock }

func (m *mockOrderUseCase[C]) Handle(ctx context.Context, cmd C) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type mockDeleteUseCase struct{ mock.Mock }

func (m *mockDeleteUseCase) Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type mockListUseCase struct{ mock.Mock }

func (m *mockListUseCase) Handle(
	ctx context.Context,
	query queries.ListOrdersQuery,
) ([]queries.ListOrdersQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.ListOrdersQueryResponse), args.Error(1)
}

type testServer struct {
	e        *echo.Echo
	logs     *observer.ObservedLogs
	create   *mockOrderUseCase[commands.CreateOrderCommand]
	trigger  *mockOrderUseCase[commands.TriggerActionCommand]
	execute  *mockOrderUseCase[commands.ExecuteActionCommand]
	post     *mockOrderUseCase[commands.PostMovementCommand]
	cancel   *mockOrderUseCase[commands.CancelMovementCommand]
	payment  *mockOrderUseCase[commands.AddPaymentCommand]
	archive  *mockOrderUseCase[commands.ArchiveOrderCommand]
	get      *mockOrderUseCase[queries.GetOrderQuery]
	deletion *mockDeleteUseCase
	list     *mockListUseCase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	ts := &testServer{
		logs:     logs,
		create:   new(mockOrderUseCase[commands.CreateOrderCommand]),
		trigger:  new(mockOrderUseCase[commands.TriggerActionCommand]),
		execute:  new(mockOrderUseCase[commands.ExecuteActionCommand]),
		post:     new(mockOrderUseCase[commands.PostMovementCommand]),
		cancel:   new(mockOrderUseCase[commands.CancelMovementCommand]),
		payment:  new(mockOrderUseCase[commands.AddPaymentCommand]),
		archive:  new(mockOrderUseCase[commands.ArchiveOrderCommand]),
		get:      new(mockOrderUseCase[queries.GetOrderQuery]),
		deletion: new(mockDeleteUseCase),
		list:     new(mockListUseCase),
	}

	server := NewServer(UseCases{
		CreateOrder:    ts.create,
		TriggerAction:  ts.trigger,
		ExecuteAction:  ts.execute,
		PostMovement:   ts.post,
		CancelMovement: ts.cancel,
		AddPayment:     ts.payment,
		ArchiveOrder:   ts.archive,
		DeleteOrder:    ts.deletion,
		GetOrder:       ts.get,
		ListOrders:     ts.list,
	})
	e, err := NewRouter(server, zap.New(core))
	require.NoError(t, err)
	ts.e = e
	return ts
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "SO-000001", "CUST-1",
		kernel.MustQuantity("10"), kernel.MustQuantity("500"), "EUR", order.Confirmed, now)
	require.NoError(t, err)
	return o
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) Error {
	t.Helper()
	var body Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestCreateOrder_Success(t *testing.T) {
	// Given
	ts := newTestServer(t)
	created := newTestOrder(t)
	ts.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.CustomerRef() == "CUST-1" &&
			cmd.OrderedQty().String() == "10.00" &&
			cmd.InitialStatus() == order.Confirmed
	})).Return(created, nil).Once()

	// When
	rec := ts.do(http.MethodPost, "/api/v1/orders",
		`{"customer_ref":"CUST-1","ordered_qty":"10","amount":"500","currency":"EUR"}`)

	// Then
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var body Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, created.ID().String(), body.ID.String())
	assert.Equal(t, "SO-000001", body.Number)
	assert.Equal(t, "Confirmed", body.Status)
	assert.Equal(t, "Unpaid", body.Settlement)
	assert.Equal(t, "10.00", body.Totals.Ordered)
	assert.Empty(t, body.Shipments)
	ts.create.AssertExpectations(t)
}

func TestCreateOrder_BodyViolatesSchema(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/v1/orders", `{"ordered_qty":"10","amount":"500","currency":"EUR"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errs.KindValidation.String(), decodeError(t, rec).Kind)
	ts.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestGetOrder_Success(t *testing.T) {
	ts := newTestServer(t)
	o := newTestOrder(t)
	ts.get.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderQuery) bool {
		return q.OrderID().IsEqual(o.ID())
	})).Return(o, nil).Once()

	rec := ts.do(http.MethodGet, "/api/v1/orders/"+o.ID().String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "CUST-1", body.CustomerRef)
	assert.Equal(t, int64(0), body.Version)
	ts.get.AssertExpectations(t)
}

func TestGetOrder_NotFound(t *testing.T) {
	ts := newTestServer(t)
	id := kernel.NewUUID()
	ts.get.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewObjectNotFoundError("order", id)).Once()

	rec := ts.do(http.MethodGet, "/api/v1/orders/"+id.String(), "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errs.KindNotFound.String(), decodeError(t, rec).Kind)
}

func TestGetOrder_MalformedID(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/v1/orders/not-a-uuid", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errs.KindValidation.String(), decodeError(t, rec).Kind)
	ts.get.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestListOrders_PassesFilters(t *testing.T) {
	// Given
	ts := newTestServer(t)
	id := kernel.NewUUID()
	ts.list.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
		return q.Status() == order.Shipped && q.IncludeArchived() && q.Limit() == 5 && q.Offset() == 10
	})).Return([]queries.ListOrdersQueryResponse{{
		ID:          id,
		Number:      "SO-000007",
		CustomerRef: "CUST-7",
		Status:      order.Shipped,
		Settlement:  order.Unpaid,
		OrderedQty:  kernel.MustQuantity("3"),
		Amount:      kernel.MustQuantity("30"),
		Currency:    "EUR",
		Version:     4,
		UpdatedAt:   now,
	}}, nil).Once()

	// When
	rec := ts.do(http.MethodGet, "/api/v1/orders?status=Shipped&include_archived=true&limit=5&offset=10", "")

	// Then
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body []OrderSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "SO-000007", body[0].Number)
	assert.Equal(t, "Shipped", body[0].Status)
	assert.Equal(t, "3.00", body[0].OrderedQty)
	ts.list.AssertExpectations(t)
}

func TestListOrders_Defaults(t *testing.T) {
	ts := newTestServer(t)
	ts.list.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
		return q.Status() == order.Unknown && !q.IncludeArchived() &&
			q.Limit() == queries.DefaultListLimit && q.Offset() == 0
	})).Return([]queries.ListOrdersQueryResponse{}, nil).Once()

	rec := ts.do(http.MethodGet, "/api/v1/orders", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	ts.list.AssertExpectations(t)
}

func TestTriggerAction_WithoutQuantity_MovesLifecycle(t *testing.T) {
	ts := newTestServer(t)
	o := newTestOrder(t)
	ts.trigger.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.TriggerActionCommand) bool {
		return cmd.OrderID().IsEqual(o.ID()) && cmd.Action() == order.ActionApprove
	})).Return(o, nil).Once()

	rec := ts.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/actions", `{"action":"approve"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ts.trigger.AssertExpectations(t)
	ts.execute.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestTriggerAction_WithQuantity_RecordsMovement(t *testing.T) {
	ts := newTestServer(t)
	o := newTestOrder(t)
	ts.execute.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ExecuteActionCommand) bool {
		in := cmd.Input()
		return cmd.Action() == order.ActionShip &&
			in.Quantity.Equal(decimal.RequireFromString("2.5")) &&
			in.Mode == "road" &&
			in.Reference == "TRK-1" &&
			in.AutoPost &&
			in.Date.Equal(now)
	})).Return(o, nil).Once()

	rec := ts.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/actions",
		`{"action":"ship","quantity":"2.5","mode":"road","reference":"TRK-1","auto_post":true,"date":"2025-06-02T08:00:00Z"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ts.execute.AssertExpectations(t)
	ts.trigger.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestTriggerAction_NegativeQuantity(t *testing.T) {
	negative := decimal.RequireFromString("-3")
	rejected, err := order.NewOrder(kernel.NewUUID(), "SO-000002", "CUST-1",
		kernel.MustQuantity("10"), kernel.MustQuantity("500"), "EUR", order.Draft, now)
	require.NoError(t, err)
	require.NoError(t, rejected.TriggerAction(order.ActionReject, now))

	tests := []struct {
		name    string
		order   *order.Order
		status  int
		kind    errs.Kind
		message string
	}{
		{
			name:    "open order reports remaining capacity",
			order:   newTestOrder(t),
			status:  http.StatusUnprocessableEntity,
			kind:    errs.KindCapacity,
			message: "requested -3.00, remaining 10.00",
		},
		{
			name:    "rejected order fails the guard first",
			order:   rejected,
			status:  http.StatusConflict,
			kind:    errs.KindGuardViolation,
			message: "Rejected -> Shipped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			in := order.MovementInput{Quantity: negative, Mode: "road"}
			_, domainErr := tt.order.PrepareMovement(order.ActionShip, in)
			require.Error(t, domainErr)
			ts.execute.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ExecuteActionCommand) bool {
				return cmd.Input().Quantity.Equal(negative) && cmd.Input().Mode == "road"
			})).Return(nil, domainErr).Once()

			rec := ts.do(http.MethodPost, "/api/v1/orders/"+tt.order.ID().String()+"/actions",
				`{"action":"ship","quantity":"-3","mode":"road"}`)

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			body := decodeError(t, rec)
			assert.Equal(t, tt.kind.String(), body.Kind)
			assert.Contains(t, body.Message, tt.message)
			ts.execute.AssertExpectations(t)
		})
	}
}

func TestTriggerAction_ErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   errs.Kind
	}{
		{
			name:   "guard violation",
			err:    errs.NewTransitionNotAllowedError("Invoiced", "Shipped"),
			status: http.StatusConflict,
			kind:   errs.KindGuardViolation,
		},
		{
			name:   "capacity",
			err:    errs.NewCapacityExceededError("shipments", "12.00", "10.00"),
			status: http.StatusUnprocessableEntity,
			kind:   errs.KindCapacity,
		},
		{
			name:   "concurrency conflict",
			err:    errs.NewVersionConflictError("order", kernel.NewUUID(), 3),
			status: http.StatusConflict,
			kind:   errs.KindConcurrencyConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.execute.On("Handle", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := ts.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/actions",
				`{"action":"ship","quantity":"12"}`)

			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.kind.String(), body.Kind)
			assert.Equal(t, tt.err.Error(), body.Message)
		})
	}
}

func TestTriggerAction_InternalErrorIsLoggedAndHidden(t *testing.T) {
	ts := newTestServer(t)
	ts.trigger.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()

	rec := ts.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/actions", `{"action":"cancel"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, errs.KindInternal.String(), body.Kind)
	assert.Equal(t, "internal error", body.Message)
	failures := ts.logs.FilterMessage("request failed").All()
	require.Len(t, failures, 1)
	assert.Equal(t, "connection reset", failures[0].ContextMap()["error"])
}

func TestTriggerAction_UnknownAction(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/actions", `{"action":"teleport"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.trigger.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestPostMovement(t *testing.T) {
	ts := newTestServer(t)
	o := newTestOrder(t)
	rowID := kernel.NewUUID()
	ts.post.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PostMovementCommand) bool {
		return cmd.OrderID().IsEqual(o.ID()) && cmd.Stage() == order.StageDeliveries && cmd.RowID().IsEqual(rowID)
	})).Return(o, nil).Once()

	rec := ts.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/deliveries/"+rowID.String()+"/post", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ts.post.AssertExpectations(t)
}

func TestCancelMovement(t *testing.T) {
	ts := newTestServer(t)
	o := newTestOrder(t)
	rowID := kernel.NewUUID()
	ts.cancel.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CancelMovementCommand) bool {
		return cmd.Stage() == order.StageInvoices && cmd.RowID().IsEqual(rowID)
	})).Return(o, nil).Once()

	rec := ts.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/invoices/"+rowID.String()+"/cancel", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ts.cancel.AssertExpectations(t)
}

func TestPostMovement_UnknownStage(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost,
		"/api/v1/orders/"+kernel.NewUUID().String()+"/returns/"+kernel.NewUUID().String()+"/post", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.post.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestAddPayment(t *testing.T) {
	ts := newTestServer(t)
	o := newTestOrder(t)
	ts.payment.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AddPaymentCommand) bool {
		return cmd.Amount().String() == "120.25" && cmd.Mode() == "card" && cmd.Reference() == "TX-1"
	})).Return(o, nil).Once()

	rec := ts.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/payments",
		`{"amount":"120.25","mode":"card","reference":"TX-1"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ts.payment.AssertExpectations(t)
}

func TestAddPayment_ZeroAmount(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/v1/orders/"+kernel.NewUUID().String()+"/payments", `{"amount":"0"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.payment.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestArchiveOrder(t *testing.T) {
	ts := newTestServer(t)
	o := newTestOrder(t)
	ts.archive.On("Handle", mock.Anything, mock.Anything).Return(o, nil).Once()

	rec := ts.do(http.MethodPost, "/api/v1/orders/"+o.ID().String()+"/archive", "")

	require.Equal(t, http.StatusOK, rec.Code)
	ts.archive.AssertExpectations(t)
}

func TestDeleteOrder(t *testing.T) {
	ts := newTestServer(t)
	id := kernel.NewUUID()
	ts.deletion.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DeleteOrderCommand) bool {
		return cmd.OrderID().IsEqual(id)
	})).Return(nil).Once()

	rec := ts.do(http.MethodDelete, "/api/v1/orders/"+id.String(), "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	ts.deletion.AssertExpectations(t)
}

func TestDeleteOrder_HasPostings(t *testing.T) {
	ts := newTestServer(t)
	ts.deletion.On("Handle", mock.Anything, mock.Anything).
		Return(errs.NewTransitionNotAllowedError("Shipped", "deleted")).Once()

	rec := ts.do(http.MethodDelete, "/api/v1/orders/"+kernel.NewUUID().String(), "")

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/v1/unknown", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errs.KindNotFound.String(), decodeError(t, rec).Kind)
}
