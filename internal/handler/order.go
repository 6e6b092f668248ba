package handler

import (
	"errors"
	"net/http"

	"flowermart-be/internal/customer"
	"flowermart-be/internal/middleware"
	"flowermart-be/internal/order"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	order.CreateInput
	CustomerInfo *customer.Contact `json:"customer_info"`
}

// Create places an order. A bearer token selects the account's customer
// profile; without one the customer_info block identifies the guest.
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	var identity customer.Identity
	if claims, ok := middleware.GetClaims(c); ok {
		identity = customer.Authenticated(claims.UserID)
	} else {
		if req.CustomerInfo == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "customer_info is required for guest checkout"})
			return
		}
		identity = customer.AsGuest(*req.CustomerInfo)
	}

	o, err := h.orders.Create(c.Request.Context(), identity, req.CreateInput)
	if err != nil {
		// At checkout a missing profile is a request problem, not a
		// lookup miss on a routed resource.
		if errors.Is(err, customer.ErrCustomerNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order placed successfully", "order_id": o.ID})
}

// ListMine returns the authenticated user's orders.
func (h *OrderHandler) ListMine(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "authentication required"})
		return
	}

	summaries, err := h.orders.ListForUser(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *OrderHandler) ListAll(c *gin.Context) {
	summaries, err := h.orders.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order status updated"})
}

func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.orders.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
