package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/teetribe/shop-api/internal/ai"
	"github.com/teetribe/shop-api/internal/payment"
)

// usdRate is the fixed number of store-currency units per US dollar used
// when converting cart prices into Stripe's cent amounts.
const usdRate = 280

type createSessionRequest struct {
	Items  []cartItemPayload `json:"items"`
	UserID string            `json:"user_id"`
}

func (h *Handler) handleCreatePaymentSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if len(req.Items) == 0 {
		badRequest(c, "cart is empty")
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = "guest_user"
	}

	lineItems := make([]payment.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		converted := item.toItem()
		lineItems = append(lineItems, payment.LineItem{
			Name:       converted.Name,
			UnitAmount: int64(converted.Price / usdRate * 100),
			Quantity:   converted.Quantity,
		})
	}

	sessionURL, err := h.payments.CreateCheckoutSession(c.Request.Context(), payment.SessionInput{
		LineItems:  lineItems,
		SuccessURL: h.frontendURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  h.frontendURL + "/checkout",
		UserID:     userID,
	})
	if err != nil {
		slog.Error("failed to create checkout session", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payment session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": sessionURL})
}

type enhanceRequest struct {
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Price       flexFloat `json:"price"`
	Sizes       []string  `json:"sizes"`
	Colors      []string  `json:"colors"`
}

func (h *Handler) handleEnhance(c *gin.Context) {
	var req enhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		badRequest(c, "name is required")
		return
	}

	result, err := h.enhancer.Enhance(c.Request.Context(), ai.ProductInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       float64(req.Price),
		Sizes:       req.Sizes,
		Colors:      req.Colors,
	})
	if err != nil {
		// A failed model call is attributable to the request/model pair;
		// unusable model output is ours to answer for.
		if errors.Is(err, ai.ErrUpstream) {
			slog.Error("model call failed", "err", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "model call failed"})
			return
		}
		slog.Error("failed to enhance product", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enhance product"})
		return
	}

	c.JSON(http.StatusOK, result)
}
