package rest

import (
	"time"

	oapitypes "github.com/oapi-codegen/runtime/types"

	invtypes "github.com/vibecart/scm-service/internal/domains/inventory/application/types"
	orderstypes "github.com/vibecart/scm-service/internal/domains/orders/application/types"
	"github.com/vibecart/scm-service/internal/domains/orders/domain"
)

// apiResponse is the success envelope shared by every endpoint.
type apiResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

func okResponse(status int, message string, data any) apiResponse {
	return apiResponse{Success: true, StatusCode: status, Message: message, Data: data}
}

type demandLineDTO struct {
	SKU      int64 `json:"sku" binding:"required"`
	Quantity int   `json:"quantity" binding:"required"`
}

type reservationRequest struct {
	Lines       []demandLineDTO `json:"lines" binding:"required"`
	CustomerZip int64           `json:"customerZip" binding:"required"`
}

type confirmRequest struct {
	SKUs []int64 `json:"skus" binding:"required"`
}

type stockAdditionDTO struct {
	SKU         int64  `json:"sku" binding:"required"`
	WarehouseID string `json:"warehouseId" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
}

type addStockRequest struct {
	Additions []stockAdditionDTO `json:"additions" binding:"required"`
}

type quantityCheckRequest struct {
	SKUs []int64 `json:"skus" binding:"required"`
}

type deliveryEstimateDTO struct {
	SKU          int64          `json:"sku"`
	CustomerZip  int64          `json:"customerZip"`
	DeliveryDate oapitypes.Date `json:"deliveryDate"`
}

type warehouseStockDTO struct {
	WarehouseID string `json:"warehouseId"`
	Available   int    `json:"available"`
	Reserved    int    `json:"reserved"`
	Total       int    `json:"total"`
}

type skuStockDTO struct {
	SKU       int64 `json:"sku"`
	Available int   `json:"available"`
	Reserved  int   `json:"reserved"`
	Total     int   `json:"total"`
}

type locationStockDTO struct {
	WarehouseID string `json:"warehouseId"`
	SKU         int64  `json:"sku"`
	Available   int    `json:"available"`
	Reserved    int    `json:"reserved"`
	Total       int    `json:"total"`
}

type addressDTO struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
}

type orderItemDTO struct {
	ItemID   int64   `json:"itemId"`
	SKU      int64   `json:"sku" binding:"required"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity" binding:"required"`
	Price    float64 `json:"price"`
}

type createOrderRequest struct {
	CustomerID      int64          `json:"customerId" binding:"required"`
	Items           []orderItemDTO `json:"items" binding:"required"`
	TotalAmount     float64        `json:"totalAmount"`
	ShippingAddress addressDTO     `json:"shippingAddress"`
	BillingAddress  addressDTO     `json:"billingAddress"`
	ShippingZip     int64          `json:"shippingZip" binding:"required"`
	PaymentMethod   string         `json:"paymentMethod"`
	IdempotencyKey  string         `json:"idempotencyKey"`
}

type updateOrderRequest struct {
	TotalAmount       *float64       `json:"totalAmount"`
	TotalQuantity     *int           `json:"totalQuantity"`
	ShippingAddress   *addressDTO    `json:"shippingAddress"`
	BillingAddress    *addressDTO    `json:"billingAddress"`
	ShippingZip       *int64         `json:"shippingZip"`
	Status            *string        `json:"status"`
	PaymentMethod     *string        `json:"paymentMethod"`
	EstimatedDelivery *oapitypes.Date `json:"estimatedDelivery"`
	Items             []orderItemDTO `json:"items"`
}

type orderDTO struct {
	OrderID           string          `json:"orderId"`
	CustomerID        int64           `json:"customerId"`
	Items             []orderItemDTO  `json:"items"`
	TotalAmount       float64         `json:"totalAmount"`
	TotalQuantity     int             `json:"totalQuantity"`
	ShippingAddress   addressDTO      `json:"shippingAddress"`
	BillingAddress    addressDTO      `json:"billingAddress"`
	ShippingZip       int64           `json:"shippingZip"`
	Status            string          `json:"status"`
	PaymentStatus     string          `json:"paymentStatus"`
	PaymentMethod     string          `json:"paymentMethod"`
	EstimatedDelivery *oapitypes.Date `json:"estimatedDelivery,omitempty"`
	OrderDate         time.Time       `json:"orderDate"`
}

type createOrderResponse struct {
	Order       orderDTO         `json:"order"`
	Reservation map[int64]string `json:"reservation"`
}

func fromWarehouseStocks(rows []invtypes.WarehouseStock) []warehouseStockDTO {
	dtos := make([]warehouseStockDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, warehouseStockDTO{
			WarehouseID: row.WarehouseID,
			Available:   row.Available,
			Reserved:    row.Reserved,
			Total:       row.Total,
		})
	}
	return dtos
}

func fromSKUStocks(rows []invtypes.SKUStock) []skuStockDTO {
	dtos := make([]skuStockDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, skuStockDTO{
			SKU:       row.SKU,
			Available: row.Available,
			Reserved:  row.Reserved,
			Total:     row.Total,
		})
	}
	return dtos
}

func fromLocationStocks(rows []invtypes.LocationStock) []locationStockDTO {
	dtos := make([]locationStockDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, locationStockDTO{
			WarehouseID: row.WarehouseID,
			SKU:         row.SKU,
			Available:   row.Available,
			Reserved:    row.Reserved,
			Total:       row.Total,
		})
	}
	return dtos
}

func toDemandLines(dtos []demandLineDTO) []invtypes.DemandLine {
	lines := make([]invtypes.DemandLine, 0, len(dtos))
	for _, dto := range dtos {
		lines = append(lines, invtypes.DemandLine{SKU: dto.SKU, Quantity: dto.Quantity})
	}
	return lines
}

func toStockAdditions(dtos []stockAdditionDTO) []invtypes.StockAddition {
	additions := make([]invtypes.StockAddition, 0, len(dtos))
	for _, dto := range dtos {
		additions = append(additions, invtypes.StockAddition{
			SKU:         dto.SKU,
			WarehouseID: dto.WarehouseID,
			Quantity:    dto.Quantity,
		})
	}
	return additions
}

func toDomainItems(dtos []orderItemDTO) []domain.Item {
	items := make([]domain.Item, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, domain.Item{
			ItemID:   dto.ItemID,
			SKU:      dto.SKU,
			Name:     dto.Name,
			Quantity: dto.Quantity,
			Price:    dto.Price,
		})
	}
	return items
}

func toDomainAddress(dto addressDTO) domain.Address {
	return domain.Address{
		Address: dto.Address,
		City:    dto.City,
		State:   dto.State,
		Zipcode: dto.Zipcode,
	}
}

func toCreateOrderInput(req createOrderRequest) orderstypes.CreateOrderInput {
	return orderstypes.CreateOrderInput{
		CustomerID:      req.CustomerID,
		Items:           toDomainItems(req.Items),
		TotalAmount:     req.TotalAmount,
		ShippingAddress: toDomainAddress(req.ShippingAddress),
		BillingAddress:  toDomainAddress(req.BillingAddress),
		ShippingZip:     req.ShippingZip,
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
		IdempotencyKey:  req.IdempotencyKey,
	}
}

func toUpdateOrderInput(req updateOrderRequest) orderstypes.UpdateOrderInput {
	input := orderstypes.UpdateOrderInput{
		TotalAmount:   req.TotalAmount,
		TotalQuantity: req.TotalQuantity,
		ShippingZip:   req.ShippingZip,
	}
	if req.ShippingAddress != nil {
		addr := toDomainAddress(*req.ShippingAddress)
		input.ShippingAddress = &addr
	}
	if req.BillingAddress != nil {
		addr := toDomainAddress(*req.BillingAddress)
		input.BillingAddress = &addr
	}
	if req.Status != nil {
		status := domain.Status(*req.Status)
		input.Status = &status
	}
	if req.PaymentMethod != nil {
		method := domain.PaymentMethod(*req.PaymentMethod)
		input.PaymentMethod = &method
	}
	if req.EstimatedDelivery != nil {
		estimate := req.EstimatedDelivery.Time
		input.EstimatedDelivery = &estimate
	}
	if req.Items != nil {
		input.Items = toDomainItems(req.Items)
	}
	return input
}

func fromOrder(order *domain.Order) orderDTO {
	dto := orderDTO{
		OrderID:       order.ID,
		CustomerID:    order.CustomerID,
		TotalAmount:   order.TotalAmount,
		TotalQuantity: order.TotalQuantity,
		ShippingAddress: addressDTO{
			Address: order.ShippingAddress.Address,
			City:    order.ShippingAddress.City,
			State:   order.ShippingAddress.State,
			Zipcode: order.ShippingAddress.Zipcode,
		},
		BillingAddress: addressDTO{
			Address: order.BillingAddress.Address,
			City:    order.BillingAddress.City,
			State:   order.BillingAddress.State,
			Zipcode: order.BillingAddress.Zipcode,
		},
		ShippingZip:   order.ShippingZip,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		PaymentMethod: string(order.PaymentMethod),
		OrderDate:     order.OrderDate,
	}
	for _, item := range order.Items {
		dto.Items = append(dto.Items, orderItemDTO{
			ItemID:   item.ItemID,
			SKU:      item.SKU,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	if !order.EstimatedDelivery.IsZero() {
		estimate := oapitypes.Date{Time: order.EstimatedDelivery}
		dto.EstimatedDelivery = &estimate
	}
	return dto
}

func fromOrders(orders []*domain.Order) []orderDTO {
	dtos := make([]orderDTO, 0, len(orders))
	for _, order := range orders {
		dtos = append(dtos, fromOrder(order))
	}
	return dtos
}
