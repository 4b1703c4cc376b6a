package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ordersapp "github.com/vibecart/scm-service/internal/domains/orders/application"
	orderstypes "github.com/vibecart/scm-service/internal/domains/orders/application/types"
	ordersports "github.com/vibecart/scm-service/internal/domains/orders/ports"
)

// OrderAPI wires HTTP transport with the orders bounded context service and
// the durable checkout workflow.
type OrderAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Post /v1/orders
// Place a new order
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := api.checkout(c.Request.Context(), toCreateOrderInput(req))
	if err != nil {
		if errors.Is(err, ordersapp.ErrStockShortage) && result != nil {
			respondShortage(c, result.Reservation)
			return
		}
		respondServiceError(c, err)
		return
	}
	response := createOrderResponse{Order: fromOrder(result.Order), Reservation: result.Reservation}
	c.JSON(http.StatusCreated, okResponse(http.StatusCreated, "Order placed successfully", response))
}

func (api *OrderAPI) checkout(ctx context.Context, input orderstypes.CreateOrderInput) (*orderstypes.CreateOrderResult, error) {
	if api.workflows != nil {
		return api.workflows.Checkout(ctx, input)
	}
	return api.service.CreateOrder(ctx, input)
}

// Get /v1/orders
// List all orders
func (api *OrderAPI) ListOrders(c *gin.Context) {
	orders, err := api.service.ListOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, "Orders fetched", fromOrders(orders)))
}

// Get /v1/orders/:orderId
// Fetch one order by id
func (api *OrderAPI) GetOrder(c *gin.Context) {
	order, err := api.service.GetOrderByID(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, "Order fetched", fromOrder(order)))
}

// Get /v1/orders/customer/:customerId
// Order history for one customer
func (api *OrderAPI) OrderHistory(c *gin.Context) {
	customerID, ok := parseInt64Param(c, "customerId")
	if !ok {
		return
	}
	orders, err := api.service.OrderHistory(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, "Order history fetched", fromOrders(orders)))
}

// Put /v1/orders/:orderId
// Patch an existing order
func (api *OrderAPI) UpdateOrder(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	order, err := api.service.UpdateOrder(c.Request.Context(), c.Param("orderId"), toUpdateOrderInput(req))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, "Order updated", fromOrder(order)))
}

// Post /v1/orders/:orderId/cancel
// Cancel an order and release its stock
func (api *OrderAPI) CancelOrder(c *gin.Context) {
	message, err := api.service.CancelOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, message, nil))
}

// Get /v1/orders/:orderId/track
// Customer-facing tracking text for an order
func (api *OrderAPI) TrackOrder(c *gin.Context) {
	message, err := api.service.TrackOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, message, nil))
}

// Post /v1/orders/reserve
// Reserve stock without creating an order
func (api *OrderAPI) ReserveStock(c *gin.Context) {
	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	outcome, err := api.service.ReserveStock(c.Request.Context(), toDemandLines(req.Lines), req.CustomerZip)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, "Stock reservation processed", outcome))
}

func respondShortage(c *gin.Context, reservation map[int64]string) {
	c.JSON(http.StatusConflict, apiResponse{
		Success:    false,
		StatusCode: http.StatusConflict,
		Message:    "Not enough stock to fulfill the order",
		Data:       reservation,
	})
}
