package handler

import (
	"errors"
	"net/http"
	"strconv"

	"flowermart-be/internal/category"
	"flowermart-be/internal/customer"
	"flowermart-be/internal/logger"
	"flowermart-be/internal/order"
	"flowermart-be/internal/product"
	"flowermart-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps domain errors to HTTP responses. Anything not in
// the map is a 500 with a generic body; the detail goes to the log only.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrInvalidItems),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, customer.ErrInvalidGuestContact),
		errors.Is(err, category.ErrNameRequired),
		errors.Is(err, category.ErrCategoryInUse),
		errors.Is(err, product.ErrInvalidProduct),
		errors.Is(err, user.ErrUsernameExists),
		errors.Is(err, user.ErrEmailExists):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})

	case errors.Is(err, user.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})

	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, customer.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})

	default:
		logger.FromCtx(c.Request.Context()).Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return 0, false
	}
	return id, true
}
