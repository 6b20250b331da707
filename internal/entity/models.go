package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. Slug is the unique, case-insensitive lookup
// key used by the storefront instead of the raw ObjectID.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Slug         string             `bson:"slug" json:"slug"`
	Category     string             `bson:"category" json:"category"`
	Price        float64            `bson:"price" json:"price"`
	Image        string             `bson:"image" json:"image"`
	Description  string             `bson:"description" json:"description"`
	Sizes        []string           `bson:"sizes" json:"sizes"`
	Colors       []string           `bson:"colors" json:"colors"`
	MetaKeywords []string           `bson:"meta_keywords" json:"meta_keywords"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Review references its product by a loose string id, not an enforced
// relation. Deleting the product does not cascade.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ProductID string             `bson:"product_id" json:"product_id"`
	UserName  string             `bson:"user_name" json:"user_name"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// CartItem is a single line in a cart or an order snapshot.
type CartItem struct {
	ProductID    string   `bson:"id" json:"id"`
	Name         string   `bson:"name" json:"name"`
	Price        float64  `bson:"price" json:"price"`
	Size         string   `bson:"size" json:"size"`
	Quantity     int      `bson:"quantity" json:"quantity"`
	Image        string   `bson:"image" json:"image"`
	MetaKeywords []string `bson:"meta_keywords,omitempty" json:"meta_keywords,omitempty"`
}

// Cart holds one user's working set of line items. Saves replace the whole
// document; there is no per-item merge.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Items     []CartItem         `bson:"items" json:"items"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Contact is the buyer's contact block on an order.
type Contact struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Shipping is the delivery block on an order.
type Shipping struct {
	Name       string `bson:"name,omitempty" json:"name,omitempty"`
	Address    string `bson:"address,omitempty" json:"address,omitempty"`
	City       string `bson:"city,omitempty" json:"city,omitempty"`
	PostalCode string `bson:"postal_code,omitempty" json:"postal_code,omitempty"`
}

// Order is an immutable snapshot of the cart at purchase time; only Status
// changes afterwards, through the admin status update.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID        string             `bson:"user_id" json:"user_id"`
	Items         []CartItem         `bson:"items" json:"items"`
	Total         float64            `bson:"total" json:"total"`
	Contact       Contact            `bson:"contact" json:"contact"`
	Shipping      Shipping           `bson:"shipping" json:"shipping"`
	PaymentMethod string             `bson:"payment_method" json:"payment_method"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// Category name doubles as the denormalized link stored on products.
// Product counts are computed on read, never stored.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Customer is derived from order history the first time the customer list
// is read and found empty.
type Customer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FullName    string             `bson:"full_name" json:"full_name"`
	Email       string             `bson:"email" json:"email"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	TotalOrders int                `bson:"total_orders" json:"total_orders"`
}

const (
	// DefaultOrderStatus is assigned at placement and mutated only by admins.
	DefaultOrderStatus = "Pending"
	// DefaultPaymentMethod is the cash-on-delivery sentinel.
	DefaultPaymentMethod = "COD"
	// DefaultCategoryStatus is assigned to new and auto-created categories.
	DefaultCategoryStatus = "Active"
)
