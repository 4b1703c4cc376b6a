package ports

import (
	"context"

	invtypes "github.com/vibecart/scm-service/internal/domains/inventory/application/types"
)

// StockEventPublisher emits stock movement events for downstream consumers.
// Publishing is best-effort: implementations log failures and never surface
// them to the order flow.
type StockEventPublisher interface {
	StockReserved(ctx context.Context, orderID string, customerZip int64, lines []invtypes.DemandLine)
	StockReverted(ctx context.Context, orderID string, customerZip int64, lines []invtypes.DemandLine)
}
