package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/teetribe/shop-api/internal/entity"
)

// categoryView augments a category with its computed product count.
type categoryView struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	ProductCount int64     `json:"productCount"`
}

func (h *Handler) handleListCategories(c *gin.Context) {
	ctx := c.Request.Context()
	categories, err := h.store.ListCategories(ctx)
	if err != nil {
		fail(c, err, "categories")
		return
	}

	// One count query per category; the list is small.
	views := make([]categoryView, 0, len(categories))
	for _, cat := range categories {
		status := cat.Status
		if status == "" {
			status = entity.DefaultCategoryStatus
		}
		count, err := h.store.CountProductsInCategory(ctx, cat.Name)
		if err != nil {
			fail(c, err, "categories")
			return
		}
		views = append(views, categoryView{
			ID:           cat.ID.Hex(),
			Name:         cat.Name,
			Status:       status,
			CreatedAt:    cat.CreatedAt,
			ProductCount: count,
		})
	}

	c.JSON(http.StatusOK, gin.H{"categories": views})
}

type createCategoryRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (h *Handler) handleCreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		badRequest(c, "category name is required")
		return
	}

	category := entity.Category{
		Name:      req.Name,
		Status:    req.Status,
		CreatedAt: time.Now().UTC(),
	}
	if category.Status == "" {
		category.Status = entity.DefaultCategoryStatus
	}

	if err := h.store.CreateCategory(c.Request.Context(), &category); err != nil {
		fail(c, err, "category")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Category added successfully",
		"category": category,
	})
}

type updateCategoryRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

func (h *Handler) handleUpdateCategory(c *gin.Context) {
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		badRequest(c, "nothing to update")
		return
	}

	if err := h.store.UpdateCategory(c.Request.Context(), c.Param("id"), fields); err != nil {
		fail(c, err, "category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully"})
}

func (h *Handler) handleDeleteCategory(c *gin.Context) {
	if err := h.store.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
