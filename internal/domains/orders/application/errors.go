package application

import (
	"errors"
	"fmt"
)

var (
	// ErrStockShortage aborts order creation when one or more SKUs cannot be
	// fully reserved. The per-SKU outcome travels alongside it in the result.
	ErrStockShortage = errors.New("not enough stock to fulfill the order")

	// ErrOrderNotFound signals a lookup for an order id that does not exist.
	ErrOrderNotFound = errors.New("order not found")
)

func errOrderNotFound(id string) error {
	return fmt.Errorf("%w: order with ID %s does not exist", ErrOrderNotFound, id)
}
