package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/teetribe/shop-api/internal/entity"
)

// CreateOrder inserts the order snapshot and returns its generated id.
func (s *Store) CreateOrder(ctx context.Context, o *entity.Order) (string, error) {
	res, err := s.orders().InsertOne(ctx, o)
	if err != nil {
		return "", fmt.Errorf("failed to insert order: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	o.ID = id
	return id.Hex(), nil
}

// ListOrdersByUser returns all orders placed by the user.
func (s *Store) ListOrdersByUser(ctx context.Context, userID string) ([]entity.Order, error) {
	return s.findOrders(ctx, bson.M{"user_id": userID})
}

// ListOrders returns every order in the collection.
func (s *Store) ListOrders(ctx context.Context) ([]entity.Order, error) {
	return s.findOrders(ctx, bson.M{})
}

func (s *Store) findOrders(ctx context.Context, filter bson.M) ([]entity.Order, error) {
	cursor, err := s.orders().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	orders := []entity.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus mutates the only mutable order field.
func (s *Store) UpdateOrderStatus(ctx context.Context, id, status string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}

	res, err := s.orders().UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOrder removes the order, reporting ErrNotFound when nothing matched.
func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}

	res, err := s.orders().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
