// Package http exposes the fulfillment ledger over a JSON API described by
// openapi.yaml. Handlers translate requests into commands and queries and
// return domain errors untouched; errorHandler maps them to status codes.
package http

import (
	"context"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type (
	CreateOrderUseCase interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	TriggerActionUseCase interface {
		Handle(ctx context.Context, cmd commands.TriggerActionCommand) (*order.Order, error)
	}
	ExecuteActionUseCase interface {
		Handle(ctx context.Context, cmd commands.ExecuteActionCommand) (*order.Order, error)
	}
	PostMovementUseCase interface {
		Handle(ctx context.Context, cmd commands.PostMovementCommand) (*order.Order, error)
	}
	CancelMovementUseCase interface {
		Handle(ctx context.Context, cmd commands.CancelMovementCommand) (*order.Order, error)
	}
	AddPaymentUseCase interface {
		Handle(ctx context.Context, cmd commands.AddPaymentCommand) (*order.Order, error)
	}
	ArchiveOrderUseCase interface {
		Handle(ctx context.Context, cmd commands.ArchiveOrderCommand) (*order.Order, error)
	}
	DeleteOrderUseCase interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
	}
	GetOrderUseCase interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error)
	}
	ListOrdersUseCase interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.ListOrdersQueryResponse, error)
	}
)

// UseCases groups every operation the server dispatches to.
type UseCases struct {
	CreateOrder    CreateOrderUseCase
	TriggerAction  TriggerActionUseCase
	ExecuteAction  ExecuteActionUseCase
	PostMovement   PostMovementUseCase
	CancelMovement CancelMovementUseCase
	AddPayment     AddPaymentUseCase
	ArchiveOrder   ArchiveOrderUseCase
	DeleteOrder    DeleteOrderUseCase
	GetOrder       GetOrderUseCase
	ListOrders     ListOrdersUseCase
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	useCases UseCases
}

// NewServer creates a Server. Every use case must be set.
func NewServer(useCases UseCases) *Server {
	return &Server{useCases: useCases}
}

var _ ServerInterface = (*Server)(nil)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	initial := order.Confirmed
	if body.InitialStatus != "" {
		parsed, err := order.ParseStatus(body.InitialStatus)
		if err != nil {
			return err
		}
		initial = parsed
	}

	orderedQty, err := kernel.NewQuantity(body.OrderedQty)
	if err != nil {
		return err
	}
	amount, err := kernel.NewQuantity(body.Amount)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), body.Number, body.CustomerRef,
		orderedQty, amount, body.Currency, initial)
	if err != nil {
		return err
	}

	created, err := s.useCases.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, orderFromDomain(created))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	status := order.Unknown
	if params.Status != nil && *params.Status != "" {
		parsed, err := order.ParseStatus(*params.Status)
		if err != nil {
			return err
		}
		status = parsed
	}

	includeArchived := params.IncludeArchived != nil && *params.IncludeArchived
	limit := queries.DefaultListLimit
	if params.Limit != nil {
		limit = *params.Limit
	}
	offset := 0
	if params.Offset != nil {
		offset = *params.Offset
	}

	query, err := queries.NewListOrdersQuery(status, includeArchived, limit, offset)
	if err != nil {
		return err
	}

	rows, err := s.useCases.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]OrderSummary, 0, len(rows))
	for _, r := range rows {
		response = append(response, summaryFromQuery(r))
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	found, err := s.useCases.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(found))
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId}.
func (s *Server) DeleteOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return err
	}

	if err = s.useCases.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// TriggerAction handles POST /api/v1/orders/{orderId}/actions. A request with a
// quantity records a movement; one without only moves the lifecycle.
func (s *Server) TriggerAction(ctx echo.Context, orderID openapi_types.UUID) error {
	var body ActionRequest
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return err
	}
	action, err := order.ParseAction(body.Action)
	if err != nil {
		return err
	}

	if body.Quantity == nil {
		cmd, cmdErr := commands.NewTriggerActionCommand(id, action)
		if cmdErr != nil {
			return cmdErr
		}
		updated, handleErr := s.useCases.TriggerAction.Handle(ctx.Request().Context(), cmd)
		if handleErr != nil {
			return handleErr
		}
		return ctx.JSON(http.StatusOK, orderFromDomain(updated))
	}

	cmd, err := commands.NewExecuteActionCommand(id, action, order.MovementInput{
		Quantity:  *body.Quantity,
		Mode:      body.Mode,
		Reference: body.Reference,
		Date:      dateOrZero(body.Date),
		AutoPost:  body.AutoPost,
	})
	if err != nil {
		return err
	}

	updated, err := s.useCases.ExecuteAction.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(updated))
}

// PostMovement handles POST /api/v1/orders/{orderId}/{stage}/{rowId}/post.
func (s *Server) PostMovement(ctx echo.Context, orderID openapi_types.UUID, stage string, rowID openapi_types.UUID) error {
	id, parsedStage, row, err := parseMovementRef(orderID, stage, rowID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewPostMovementCommand(id, parsedStage, row)
	if err != nil {
		return err
	}

	updated, err := s.useCases.PostMovement.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(updated))
}

// CancelMovement handles POST /api/v1/orders/{orderId}/{stage}/{rowId}/cancel.
func (s *Server) CancelMovement(ctx echo.Context, orderID openapi_types.UUID, stage string, rowID openapi_types.UUID) error {
	id, parsedStage, row, err := parseMovementRef(orderID, stage, rowID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCancelMovementCommand(id, parsedStage, row)
	if err != nil {
		return err
	}

	updated, err := s.useCases.CancelMovement.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(updated))
}

// AddPayment handles POST /api/v1/orders/{orderId}/payments.
func (s *Server) AddPayment(ctx echo.Context, orderID openapi_types.UUID) error {
	var body NewPayment
	if err := ctx.Bind(&body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return err
	}
	amount, err := kernel.NewQuantity(body.Amount)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAddPaymentCommand(id, amount, body.Mode, body.Reference, dateOrZero(body.Date))
	if err != nil {
		return err
	}

	updated, err := s.useCases.AddPayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(updated))
}

// ArchiveOrder handles POST /api/v1/orders/{orderId}/archive.
func (s *Server) ArchiveOrder(ctx echo.Context, orderID openapi_types.UUID) error {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return err
	}
	cmd, err := commands.NewArchiveOrderCommand(id)
	if err != nil {
		return err
	}

	updated, err := s.useCases.ArchiveOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(updated))
}

func parseMovementRef(
	orderID openapi_types.UUID,
	stage string,
	rowID openapi_types.UUID,
) (kernel.UUID, order.Stage, kernel.UUID, error) {
	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return kernel.UUID{}, order.StageUnknown, kernel.UUID{}, err
	}
	parsedStage, err := order.ParseStage(stage)
	if err != nil {
		return kernel.UUID{}, order.StageUnknown, kernel.UUID{}, err
	}
	row, err := kernel.UUIDFromBytes(rowID[:])
	if err != nil {
		return kernel.UUID{}, order.StageUnknown, kernel.UUID{}, err
	}
	return id, parsedStage, row, nil
}

func dateOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
