package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teetribe/shop-api/internal/entity"
)

func (h *Handler) handleListReviews(c *gin.Context) {
	reviews, err := h.store.ListReviews(c.Request.Context(), c.Param("product_id"))
	if err != nil {
		fail(c, err, "reviews")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

type createReviewRequest struct {
	ProductID string `json:"product_id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (h *Handler) handleCreateReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	switch {
	case strings.TrimSpace(req.ProductID) == "":
		badRequest(c, "product_id is required")
		return
	case strings.TrimSpace(req.UserName) == "":
		badRequest(c, "user_name is required")
		return
	case req.Rating < 1 || req.Rating > 5:
		badRequest(c, "rating must be between 1 and 5")
		return
	}

	review := entity.Review{
		ProductID: req.ProductID,
		UserName:  req.UserName,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.CreateReview(c.Request.Context(), &review); err != nil {
		fail(c, err, "review")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review added successfully"})
}

func (h *Handler) handleDeleteReview(c *gin.Context) {
	if err := h.store.DeleteReview(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "review")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}
