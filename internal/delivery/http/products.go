package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/teetribe/shop-api/internal/entity"
	"github.com/teetribe/shop-api/internal/store"
)

const defaultPageSize = 120

func (h *Handler) handleListProducts(c *gin.Context) {
	page, ok := parsePositiveInt(c.Query("page"), 1)
	if !ok {
		badRequest(c, "page must be a positive integer")
		return
	}
	limit, ok := parsePositiveInt(c.Query("limit"), defaultPageSize)
	if !ok {
		badRequest(c, "limit must be a positive integer")
		return
	}
	minPrice, ok := parseOptionalFloat(c.Query("min_price"))
	if !ok {
		badRequest(c, "min_price must be a number")
		return
	}
	maxPrice, ok := parseOptionalFloat(c.Query("max_price"))
	if !ok {
		badRequest(c, "max_price must be a number")
		return
	}

	filter := store.ProductFilter{
		Categories: c.QueryArray("categories"),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
		Query:      c.Query("q"),
	}

	items, total, err := h.store.ListProducts(c.Request.Context(), filter, page, limit)
	if err != nil {
		fail(c, err, "products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *Handler) handleGetProductBySlug(c *gin.Context) {
	product, err := h.store.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		fail(c, err, "product")
		return
	}
	c.JSON(http.StatusOK, product)
}

type createProductRequest struct {
	Name         string      `json:"name"`
	Slug         string      `json:"slug"`
	Category     string      `json:"category"`
	Price        *float64    `json:"price"`
	Image        string      `json:"image"`
	Description  string      `json:"description"`
	Sizes        []string    `json:"sizes"`
	Colors       []string    `json:"colors"`
	MetaKeywords keywordList `json:"meta_keywords"`
}

func (h *Handler) handleCreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	switch {
	case strings.TrimSpace(req.Name) == "":
		badRequest(c, "name is required")
		return
	case strings.TrimSpace(req.Slug) == "":
		badRequest(c, "slug is required")
		return
	case strings.TrimSpace(req.Category) == "":
		badRequest(c, "category is required")
		return
	case req.Price == nil:
		badRequest(c, "price is required")
		return
	case *req.Price < 0:
		badRequest(c, "price must be non-negative")
		return
	}

	ctx := c.Request.Context()
	taken, err := h.store.SlugExists(ctx, req.Slug, "")
	if err != nil {
		fail(c, err, "product")
		return
	}
	if taken {
		badRequest(c, "slug already exists")
		return
	}

	now := time.Now().UTC()
	product := entity.Product{
		Name:         req.Name,
		Slug:         req.Slug,
		Category:     req.Category,
		Price:        *req.Price,
		Image:        req.Image,
		Description:  req.Description,
		Sizes:        req.Sizes,
		Colors:       req.Colors,
		MetaKeywords: req.MetaKeywords,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if product.MetaKeywords == nil {
		product.MetaKeywords = []string{}
	}

	if err := h.store.CreateProduct(ctx, &product); err != nil {
		fail(c, err, "product")
		return
	}

	// Second, non-atomic write: keep the denormalized category link
	// resolvable. A failure here leaves the product without its category
	// record, which the next create repairs.
	if err := h.store.EnsureCategory(ctx, product.Category); err != nil {
		slog.Error("failed to auto-create category", "category", product.Category, "err", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product added successfully",
		"product": product,
	})
}

// updateProductRequest deliberately has no id or timestamp fields: they are
// server-controlled, so client-supplied values are dropped during decode.
type updateProductRequest struct {
	Name         *string      `json:"name"`
	Slug         *string      `json:"slug"`
	Category     *string      `json:"category"`
	Price        *float64     `json:"price"`
	Image        *string      `json:"image"`
	Description  *string      `json:"description"`
	Sizes        *[]string    `json:"sizes"`
	Colors       *[]string    `json:"colors"`
	MetaKeywords *keywordList `json:"meta_keywords"`
}

func (h *Handler) handleUpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	if req.Price != nil && *req.Price < 0 {
		badRequest(c, "price must be non-negative")
		return
	}

	ctx := c.Request.Context()
	if req.Slug != nil {
		taken, err := h.store.SlugExists(ctx, *req.Slug, id)
		if err != nil {
			fail(c, err, "product")
			return
		}
		if taken {
			badRequest(c, "slug already exists")
			return
		}
	}

	fields := bson.M{"updatedAt": time.Now().UTC()}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Slug != nil {
		fields["slug"] = *req.Slug
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Sizes != nil {
		fields["sizes"] = *req.Sizes
	}
	if req.Colors != nil {
		fields["colors"] = *req.Colors
	}
	if req.MetaKeywords != nil {
		fields["meta_keywords"] = []string(*req.MetaKeywords)
	}

	if err := h.store.UpdateProduct(ctx, id, fields); err != nil {
		fail(c, err, "product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully",
	})
}

func (h *Handler) handleDeleteProduct(c *gin.Context) {
	if err := h.store.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (h *Handler) handleProductsSummary(c *gin.Context) {
	total, err := h.store.CountProducts(c.Request.Context())
	if err != nil {
		fail(c, err, "products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_products": total})
}
