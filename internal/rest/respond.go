package rest

import (
	"errors"
	"net/http"

	"shopcore-be/internal/cart"
	"shopcore-be/internal/category"
	"shopcore-be/internal/logger"
	"shopcore-be/internal/order"
	"shopcore-be/internal/product"
	"shopcore-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var notFoundErrors = []error{
	user.ErrUserNotFound,
	category.ErrCategoryNotFound,
	product.ErrProductNotFound,
	product.ErrCategoryNotFound,
	cart.ErrCartNotFound,
	cart.ErrCartItemNotFound,
	order.ErrOrderNotFound,
}

var conflictErrors = []error{
	user.ErrUsernameTaken,
	user.ErrEmailTaken,
	category.ErrNameTaken,
	category.ErrHasProducts,
}

var unauthorizedErrors = []error{
	user.ErrInvalidCredentials,
	user.ErrAccountDisabled,
}

var badRequestErrors = []error{
	product.ErrInvalidPrice,
	product.ErrInvalidStock,
	product.ErrInsufficientStock,
	cart.ErrInvalidQuantity,
	cart.ErrProductInactive,
	cart.ErrInsufficientStock,
	cart.ErrNotOwner,
	order.ErrCartEmpty,
	order.ErrShippingRequired,
	order.ErrInsufficientStock,
	order.ErrInvalidStatus,
	order.ErrAlreadyCancelled,
	order.ErrNotCancellable,
	order.ErrUseCancelFlow,
	order.ErrNotOwner,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// respondError maps domain sentinel errors onto HTTP statuses with a
// {"message": ...} body. Anything unrecognized is a 500 with a generic
// message; the real error only goes to the log.
func respondError(c *gin.Context, err error) {
	switch {
	case isAny(err, notFoundErrors):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case isAny(err, conflictErrors):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case isAny(err, unauthorizedErrors):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case isAny(err, badRequestErrors):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		logger.FromCtx(c.Request.Context()).Error("unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}
