// Package http maps REST routes onto store operations. Handlers are
// stateless; every request context propagates to the database and to
// outbound provider calls.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/teetribe/shop-api/internal/ai"
	"github.com/teetribe/shop-api/internal/entity"
	"github.com/teetribe/shop-api/internal/payment"
	"github.com/teetribe/shop-api/internal/store"
)

// Store is the data access surface the handlers need. *store.Store
// implements it; tests substitute a mock.
type Store interface {
	ListProducts(ctx context.Context, f store.ProductFilter, page, limit int) ([]entity.Product, int64, error)
	GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error)
	CreateProduct(ctx context.Context, p *entity.Product) error
	UpdateProduct(ctx context.Context, id string, fields bson.M) error
	DeleteProduct(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	CountProducts(ctx context.Context) (int64, error)
	EnsureCategory(ctx context.Context, name string) error

	ListReviews(ctx context.Context, productID string) ([]entity.Review, error)
	CreateReview(ctx context.Context, r *entity.Review) error
	DeleteReview(ctx context.Context, id string) error

	GetCart(ctx context.Context, userID string) (*entity.Cart, error)
	SaveCart(ctx context.Context, userID string, items []entity.CartItem) error
	ClearCart(ctx context.Context, userID string) error

	CreateOrder(ctx context.Context, o *entity.Order) (string, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]entity.Order, error)
	ListOrders(ctx context.Context) ([]entity.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
	DeleteOrder(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]entity.Category, error)
	CountProductsInCategory(ctx context.Context, name string) (int64, error)
	CreateCategory(ctx context.Context, c *entity.Category) error
	UpdateCategory(ctx context.Context, id string, fields bson.M) error
	DeleteCategory(ctx context.Context, id string) error

	ListCustomers(ctx context.Context) ([]entity.Customer, error)
	DeriveCustomersFromOrders(ctx context.Context) (int, error)
}

// PaymentProvider creates hosted checkout sessions.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, in payment.SessionInput) (string, error)
}

// Enhancer generates enhanced product copy.
type Enhancer interface {
	Enhance(ctx context.Context, in ai.ProductInput) (*ai.Result, error)
}

// Handler holds the HTTP handlers and their dependencies.
type Handler struct {
	store       Store
	payments    PaymentProvider
	enhancer    Enhancer
	frontendURL string
}

func NewHandler(store Store, payments PaymentProvider, enhancer Enhancer, frontendURL string) *Handler {
	return &Handler{
		store:       store,
		payments:    payments,
		enhancer:    enhancer,
		frontendURL: frontendURL,
	}
}

// NewRouter builds the Gin engine with one coherent CORS policy.
func NewRouter(h *Handler, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h.RegisterRoutes(router)
	return router
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.handleHealth)

	router.GET("/products", h.handleListProducts)
	router.GET("/products/slug/:slug", h.handleGetProductBySlug)
	router.POST("/products", h.handleCreateProduct)
	router.PUT("/products/:id", h.handleUpdateProduct)
	router.DELETE("/products/:id", h.handleDeleteProduct)
	router.GET("/dashboard/products", h.handleProductsSummary)

	router.GET("/reviews/:product_id", h.handleListReviews)
	router.POST("/reviews", h.handleCreateReview)
	router.DELETE("/reviews/:id", h.handleDeleteReview)

	router.GET("/cart/:user_id", h.handleGetCart)
	router.POST("/cart/:user_id", h.handleSaveCart)
	router.DELETE("/cart/:user_id", h.handleClearCart)

	router.POST("/orders/:user_id", h.handlePlaceOrder)
	router.GET("/orders/:user_id", h.handleListUserOrders)
	router.GET("/orders", h.handleOrdersSummary)

	admin := router.Group("/admin")
	{
		admin.GET("/orders", h.handleListAllOrders)
		admin.PUT("/orders/:id", h.handleUpdateOrderStatus)
		admin.DELETE("/orders/:id", h.handleDeleteOrder)
	}

	router.GET("/categories", h.handleListCategories)
	router.POST("/categories", h.handleCreateCategory)
	router.PUT("/categories/:id", h.handleUpdateCategory)
	router.DELETE("/categories/:id", h.handleDeleteCategory)

	router.GET("/customers", h.handleListCustomers)

	router.POST("/payments/create-session", h.handleCreatePaymentSession)
	router.POST("/ai/enhance", h.handleEnhance)
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// fail maps store sentinels to status codes; anything else is logged in
// full and surfaced as a generic server error.
func fail(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": op + " not found"})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("request failed", "op", op, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
