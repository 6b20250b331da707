package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teetribe/shop-api/internal/entity"
	"github.com/teetribe/shop-api/internal/store"
)

// cartItemPayload tolerates string-typed numeric fields; see flexFloat and
// flexInt for the coercion rules.
type cartItemPayload struct {
	ProductID    string    `json:"id"`
	Name         string    `json:"name"`
	Price        flexFloat `json:"price"`
	Size         string    `json:"size"`
	Quantity     flexInt   `json:"quantity"`
	Image        string    `json:"image"`
	MetaKeywords []string  `json:"meta_keywords"`
}

func (p cartItemPayload) toItem() entity.CartItem {
	quantity := int(p.Quantity)
	if quantity == 0 {
		quantity = 1
	}
	return entity.CartItem{
		ProductID:    p.ProductID,
		Name:         p.Name,
		Price:        float64(p.Price),
		Size:         p.Size,
		Quantity:     quantity,
		Image:        p.Image,
		MetaKeywords: p.MetaKeywords,
	}
}

func toItems(payloads []cartItemPayload) []entity.CartItem {
	items := make([]entity.CartItem, 0, len(payloads))
	for _, p := range payloads {
		items = append(items, p.toItem())
	}
	return items
}

func (h *Handler) handleGetCart(c *gin.Context) {
	userID := c.Param("user_id")

	cart, err := h.store.GetCart(c.Request.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		// Absence is a valid state, not an error.
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "items": []entity.CartItem{}})
		return
	}
	if err != nil {
		fail(c, err, "cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

type saveCartRequest struct {
	Items []cartItemPayload `json:"items"`
}

func (h *Handler) handleSaveCart(c *gin.Context) {
	var req saveCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	items := toItems(req.Items)
	if err := h.store.SaveCart(c.Request.Context(), c.Param("user_id"), items); err != nil {
		fail(c, err, "cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart saved", "count": len(items)})
}

func (h *Handler) handleClearCart(c *gin.Context) {
	if err := h.store.ClearCart(c.Request.Context(), c.Param("user_id")); err != nil {
		fail(c, err, "cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
