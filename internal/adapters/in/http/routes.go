package http

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderID openapi_types.UUID) error
	// (DELETE /api/v1/orders/{orderId})
	DeleteOrder(ctx echo.Context, orderID openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/actions)
	TriggerAction(ctx echo.Context, orderID openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/{stage}/{rowId}/post)
	PostMovement(ctx echo.Context, orderID openapi_types.UUID, stage string, rowID openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/{stage}/{rowId}/cancel)
	CancelMovement(ctx echo.Context, orderID openapi_types.UUID, stage string, rowID openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/payments)
	AddPayment(ctx echo.Context, orderID openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/archive)
	ArchiveOrder(ctx echo.Context, orderID openapi_types.UUID) error
}

// ServerInterfaceWrapper binds path and query parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPathUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("invalid format for parameter %s: %w", name, err))
	}
	return id, nil
}

func bindPathString(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("invalid format for parameter %s: %w", name, err))
	}
	return value, nil
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	bindings := []struct {
		name string
		dest any
	}{
		{name: "status", dest: &params.Status},
		{name: "include_archived", dest: &params.IncludeArchived},
		{name: "limit", dest: &params.Limit},
		{name: "offset", dest: &params.Offset},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, ctx.QueryParams(), b.dest); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(b.name, fmt.Errorf("invalid format for parameter %s: %w", b.name, err))
		}
	}

	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) DeleteOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.DeleteOrder(ctx, orderID)
}

func (w *ServerInterfaceWrapper) TriggerAction(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.TriggerAction(ctx, orderID)
}

func (w *ServerInterfaceWrapper) movementParams(ctx echo.Context) (openapi_types.UUID, string, openapi_types.UUID, error) {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return orderID, "", openapi_types.UUID{}, err
	}
	stage, err := bindPathString(ctx, "stage")
	if err != nil {
		return orderID, "", openapi_types.UUID{}, err
	}
	rowID, err := bindPathUUID(ctx, "rowId")
	if err != nil {
		return orderID, stage, rowID, err
	}
	return orderID, stage, rowID, nil
}

func (w *ServerInterfaceWrapper) PostMovement(ctx echo.Context) error {
	orderID, stage, rowID, err := w.movementParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.PostMovement(ctx, orderID, stage, rowID)
}

func (w *ServerInterfaceWrapper) CancelMovement(ctx echo.Context) error {
	orderID, stage, rowID, err := w.movementParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CancelMovement(ctx, orderID, stage, rowID)
}

func (w *ServerInterfaceWrapper) AddPayment(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.AddPayment(ctx, orderID)
}

func (w *ServerInterfaceWrapper) ArchiveOrder(ctx echo.Context) error {
	orderID, err := bindPathUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ArchiveOrder(ctx, orderID)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation under baseURL.
func RegisterHandlers(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.DELETE(baseURL+"/api/v1/orders/:orderId", wrapper.DeleteOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/actions", wrapper.TriggerAction)
	router.POST(baseURL+"/api/v1/orders/:orderId/:stage/:rowId/post", wrapper.PostMovement)
	router.POST(baseURL+"/api/v1/orders/:orderId/:stage/:rowId/cancel", wrapper.CancelMovement)
	router.POST(baseURL+"/api/v1/orders/:orderId/payments", wrapper.AddPayment)
	router.POST(baseURL+"/api/v1/orders/:orderId/archive", wrapper.ArchiveOrder)
}
