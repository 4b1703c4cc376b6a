package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApiHandleFunctions groups the handler sets mounted on the router.
type ApiHandleFunctions struct {
	InventoryAPI InventoryAPI
	OrderAPI     OrderAPI
}

// Route binds one HTTP method and pattern to a handler.
type Route struct {
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new gin engine with all routes mounted.
func NewRouter(handlers ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handlers)
}

// NewRouterWithGinEngine mounts all routes on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handlers ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handlers) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func getRoutes(handlers ApiHandleFunctions) []Route {
	return []Route{
		{http.MethodPost, "/v1/inventory/reserve", handlers.InventoryAPI.ReserveStock},
		{http.MethodPost, "/v1/inventory/revert", handlers.InventoryAPI.RevertReservation},
		{http.MethodPost, "/v1/inventory/confirm", handlers.InventoryAPI.ConfirmReservation},
		{http.MethodGet, "/v1/inventory/delivery-estimate", handlers.InventoryAPI.EstimateDelivery},
		{http.MethodPost, "/v1/inventory/quantities", handlers.InventoryAPI.CheckQuantities},
		{http.MethodGet, "/v1/inventory/sku/:sku", handlers.InventoryAPI.QuantityBySKU},
		{http.MethodGet, "/v1/inventory/item/:itemId", handlers.InventoryAPI.QuantityByItem},
		{http.MethodPost, "/v1/inventory/stock", handlers.InventoryAPI.AddStock},
		{http.MethodGet, "/v1/inventory/report/warehouses", handlers.InventoryAPI.WarehouseReport},
		{http.MethodGet, "/v1/inventory/report/skus", handlers.InventoryAPI.SKUReport},
		{http.MethodGet, "/v1/inventory/report/locations", handlers.InventoryAPI.LocationDetails},

		{http.MethodPost, "/v1/orders", handlers.OrderAPI.CreateOrder},
		{http.MethodGet, "/v1/orders", handlers.OrderAPI.ListOrders},
		{http.MethodPost, "/v1/orders/reserve", handlers.OrderAPI.ReserveStock},
		{http.MethodGet, "/v1/orders/customer/:customerId", handlers.OrderAPI.OrderHistory},
		{http.MethodGet, "/v1/orders/:orderId", handlers.OrderAPI.GetOrder},
		{http.MethodPut, "/v1/orders/:orderId", handlers.OrderAPI.UpdateOrder},
		{http.MethodPost, "/v1/orders/:orderId/cancel", handlers.OrderAPI.CancelOrder},
		{http.MethodGet, "/v1/orders/:orderId/track", handlers.OrderAPI.TrackOrder},
	}
}

func defaultFunc(c *gin.Context) {
	c.Status(http.StatusNotImplemented)
}
