package application

import (
	"fmt"

	"github.com/vibecart/scm-service/internal/domains/inventory/domain"
)

// Error constructors keep the caller-visible messages in one place. All of
// them wrap the domain sentinels so callers can branch with errors.Is.

func errNoWarehouseForZip(zip int64) error {
	return fmt.Errorf("%w for the zipcode: %d", domain.ErrWarehouseNotFound, zip)
}

func errDeliveryNotAvailable(zip int64) error {
	return fmt.Errorf("delivery not available for the zipcode: %d: %w", zip, domain.ErrWarehouseNotFound)
}

func errNoInventoryAnywhere(sku int64) error {
	return fmt.Errorf("%w for SKU: %d in any warehouse", domain.ErrInventoryNotFound, sku)
}

func errNoStockAnywhere(sku int64) error {
	return fmt.Errorf("no stock available for the SKU: %d in any inventory: %w", sku, domain.ErrInventoryNotFound)
}

func errNoHoldStock(sku int64) error {
	return fmt.Errorf("%w with stock on hold for SKU: %d", domain.ErrInventoryNotFound, sku)
}

func errRevertShortfall(sku int64) error {
	return fmt.Errorf("not enough reserved stock available to revert for SKU: %d: %w", sku, domain.ErrInventoryNotFound)
}

func errNoRecord(sku int64, warehouseID string) error {
	return fmt.Errorf("%w for SKU: %d in warehouse: %s", domain.ErrInventoryNotFound, sku, warehouseID)
}

func shortageMessage(sku int64) string {
	return fmt.Sprintf("Not enough stock to fulfill the order for SKU: %d", sku)
}
