package rest

import (
	"errors"

	"github.com/gin-gonic/gin"

	invdomain "github.com/vibecart/scm-service/internal/domains/inventory/domain"
	invports "github.com/vibecart/scm-service/internal/domains/inventory/ports"
	ordersapp "github.com/vibecart/scm-service/internal/domains/orders/application"
	ordersdomain "github.com/vibecart/scm-service/internal/domains/orders/domain"
	apierrors "github.com/vibecart/scm-service/internal/shared/errors"
)

// responder maps domain errors to RFC 7807 problems before the default
// internal-error fallback.
var responder = apierrors.NewChainedResponder("", inventoryErrorMapper, ordersErrorMapper)

func respondServiceError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	responder.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func inventoryErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, invdomain.ErrWarehouseNotFound),
		errors.Is(err, invdomain.ErrInventoryNotFound),
		errors.Is(err, invports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, invdomain.ErrInvalidQuantity),
		errors.Is(err, invdomain.ErrInvalidZipRange):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, invdomain.ErrInsufficientStock),
		errors.Is(err, invdomain.ErrInsufficientHold):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func ordersErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, ordersapp.ErrOrderNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrStockShortage):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, ordersdomain.ErrInvalidOrderID),
		errors.Is(err, ordersdomain.ErrInvalidOrderData),
		errors.Is(err, ordersdomain.ErrInvalidStatus):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ordersdomain.ErrAlreadyCancelled),
		errors.Is(err, ordersdomain.ErrAlreadyCompleted),
		errors.Is(err, ordersdomain.ErrNotCancellable):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
