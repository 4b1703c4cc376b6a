package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	oapitypes "github.com/oapi-codegen/runtime/types"

	invports "github.com/vibecart/scm-service/internal/domains/inventory/ports"
)

// InventoryAPI wires HTTP transport with the inventory bounded context service.
type InventoryAPI struct {
	service invports.Service
}

// NewInventoryAPI creates an InventoryAPI backed by the provided service.
func NewInventoryAPI(service invports.Service) InventoryAPI {
	return InventoryAPI{service: service}
}

// Post /v1/inventory/reserve
// Reserve stock for a set of demand lines
func (api *InventoryAPI) ReserveStock(c *gin.Context) {
	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	outcome, err := api.service.Reserve(c.Request.Context(), toDemandLines(req.Lines), req.CustomerZip)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, "Stock reservation processed", outcome))
}

// Post /v1/inventory/revert
// Revert a previous stock reservation
func (api *InventoryAPI) RevertReservation(c *gin.Context) {
	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := api.service.Revert(c.Request.Context(), toDemandLines(req.Lines), req.CustomerZip); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, "Stock reservation reverted", nil))
}

// Post /v1/inventory/confirm
// Confirm held stock after payment
func (api *InventoryAPI) ConfirmReservation(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := api.service.Confirm(c.Request.Context(), req.SKUs); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, "Stock reservation confirmed", nil))
}

// Get /v1/inventory/delivery-estimate
// Estimate the delivery date for a SKU and destination zipcode
func (api *InventoryAPI) EstimateDelivery(c *gin.Context) {
	sku, ok := parseInt64Query(c, "sku")
	if !ok {
		return
	}
	zip, ok := parseInt64Query(c, "zip")
	if !ok {
		return
	}
	estimate, err := api.service.EstimateDelivery(c.Request.Context(), sku, zip)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	dto := deliveryEstimateDTO{SKU: sku, CustomerZip: zip, DeliveryDate: oapitypes.Date{Time: estimate}}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, "Delivery estimate calculated", dto))
}

// Post /v1/inventory/quantities
// Check total available quantity for each SKU
func (api *InventoryAPI) CheckQuantities(c *gin.Context) {
	var req quantityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	totals, err := api.service.CheckQuantities(c.Request.Context(), req.SKUs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, "Quantities checked", totals))
}

// Get /v1/inventory/sku/:sku
// Total available quantity across warehouses for one SKU
func (api *InventoryAPI) QuantityBySKU(c *gin.Context) {
	sku, ok := parseInt64Param(c, "sku")
	if !ok {
		return
	}
	total, err := api.service.QuantityBySKU(c.Request.Context(), sku)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, "Quantity fetched", total))
}

// Get /v1/inventory/item/:itemId
// Total available quantity across warehouses for one item
func (api *InventoryAPI) QuantityByItem(c *gin.Context) {
	itemID, ok := parseInt64Param(c, "itemId")
	if !ok {
		return
	}
	total, err := api.service.QuantityByItem(c.Request.Context(), itemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, "Quantity fetched", total))
}

// Post /v1/inventory/stock
// Add stock to warehouse records
func (api *InventoryAPI) AddStock(c *gin.Context) {
	var req addStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := api.service.AddStock(c.Request.Context(), toStockAdditions(req.Additions)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, "Stock added", nil))
}

// Get /v1/inventory/report/warehouses
// Stock summary per warehouse
func (api *InventoryAPI) WarehouseReport(c *gin.Context) {
	report, err := api.service.WarehouseReport(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, "Warehouse report generated", fromWarehouseStocks(report)))
}

// Get /v1/inventory/report/skus
// Stock summary per SKU
func (api *InventoryAPI) SKUReport(c *gin.Context) {
	report, err := api.service.SKUReport(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, "SKU report generated", fromSKUStocks(report)))
}

// Get /v1/inventory/report/locations
// Flattened stock rows per warehouse and SKU
func (api *InventoryAPI) LocationDetails(c *gin.Context) {
	rows, err := api.service.LocationDetails(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, okResponse(http.StatusOK, "Location details generated", fromLocationStocks(rows)))
}

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	value, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondBadRequest(c, errors.New("invalid "+name+" parameter"))
		return 0, false
	}
	return value, true
}

func parseInt64Query(c *gin.Context, name string) (int64, bool) {
	value, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		respondBadRequest(c, errors.New("invalid "+name+" query parameter"))
		return 0, false
	}
	return value, true
}
