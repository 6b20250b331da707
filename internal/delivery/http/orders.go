package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teetribe/shop-api/internal/entity"
	"github.com/teetribe/shop-api/internal/store"
)

type placeOrderRequest struct {
	Items         []cartItemPayload `json:"items"`
	Total         float64           `json:"total"`
	Contact       entity.Contact    `json:"contact"`
	Shipping      entity.Shipping   `json:"shipping"`
	PaymentMethod string            `json:"payment_method"`
}

func (h *Handler) handlePlaceOrder(c *gin.Context) {
	userID := c.Param("user_id")

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		badRequest(c, "order must have at least one item")
		return
	}

	order := entity.Order{
		UserID:        userID,
		Items:         toItems(req.Items),
		Total:         req.Total,
		Contact:       req.Contact,
		Shipping:      req.Shipping,
		PaymentMethod: req.PaymentMethod,
		Status:        entity.DefaultOrderStatus,
		CreatedAt:     time.Now().UTC(),
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = entity.DefaultPaymentMethod
	}

	ctx := c.Request.Context()
	orderID, err := h.store.CreateOrder(ctx, &order)
	if err != nil {
		fail(c, err, "order")
		return
	}

	// Second, non-atomic write: the cart is stale once the order exists.
	// A missing cart is fine; any other failure is logged, the order stands.
	if err := h.store.ClearCart(ctx, userID); err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Error("failed to clear cart after order", "user_id", userID, "order_id", orderID, "err", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Order placed successfully",
		"order_id": orderID,
		"status":   order.Status,
	})
}

func (h *Handler) handleListUserOrders(c *gin.Context) {
	orders, err := h.store.ListOrdersByUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		fail(c, err, "orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) handleListAllOrders(c *gin.Context) {
	orders, err := h.store.ListOrders(c.Request.Context())
	if err != nil {
		fail(c, err, "orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// orderSummaryView flattens an order for the admin summary listing, with
// the timestamp as an ISO-8601 string.
type orderSummaryView struct {
	ID            string            `json:"_id"`
	UserID        string            `json:"user_id"`
	Items         []entity.CartItem `json:"items"`
	Total         float64           `json:"total"`
	Contact       entity.Contact    `json:"contact"`
	Shipping      entity.Shipping   `json:"shipping"`
	PaymentMethod string            `json:"payment_method"`
	Status        string            `json:"status"`
	CreatedAt     string            `json:"created_at"`
}

func (h *Handler) handleOrdersSummary(c *gin.Context) {
	orders, err := h.store.ListOrders(c.Request.Context())
	if err != nil {
		fail(c, err, "orders")
		return
	}

	views := make([]orderSummaryView, 0, len(orders))
	var totalRevenue float64
	for _, o := range orders {
		status := o.Status
		if status == "" {
			status = entity.DefaultOrderStatus
		}
		views = append(views, orderSummaryView{
			ID:            o.ID.Hex(),
			UserID:        o.UserID,
			Items:         o.Items,
			Total:         o.Total,
			Contact:       o.Contact,
			Shipping:      o.Shipping,
			PaymentMethod: o.PaymentMethod,
			Status:        status,
			CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339),
		})
		totalRevenue += o.Total
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": views,
		"summary": gin.H{
			"total_revenue": totalRevenue,
			"total_orders":  len(orders),
		},
	})
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) handleUpdateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		badRequest(c, "status is required")
		return
	}

	if err := h.store.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		fail(c, err, "order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
}

func (h *Handler) handleDeleteOrder(c *gin.Context) {
	if err := h.store.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
