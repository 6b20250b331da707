package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teetribe/shop-api/internal/entity"
)

// GetCart returns the user's cart. Absence is reported as ErrNotFound; the
// handler turns that into an empty-items cart shape, never a 404.
func (s *Store) GetCart(ctx context.Context, userID string) (*entity.Cart, error) {
	var cart entity.Cart
	err := s.carts().FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []entity.CartItem{}
	}
	return &cart, nil
}

// SaveCart replaces the stored cart wholesale. One cart per user, upserted
// as a whole document; there is no per-item merge.
func (s *Store) SaveCart(ctx context.Context, userID string, items []entity.CartItem) error {
	_, err := s.carts().UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"items": items, "updated_at": time.Now().UTC()}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// ClearCart deletes the cart document, reporting ErrNotFound when none
// existed.
func (s *Store) ClearCart(ctx context.Context, userID string) error {
	res, err := s.carts().DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
