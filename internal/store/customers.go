package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teetribe/shop-api/internal/entity"
)

// ListCustomers returns all customer records.
func (s *Store) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	cursor, err := s.customers().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}

	customers := []entity.Customer{}
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}
	return customers, nil
}

// customerGroup is one aggregation bucket: orders grouped by contact email.
type customerGroup struct {
	Email       string    `bson:"_id"`
	FullName    string    `bson:"full_name"`
	CreatedAt   time.Time `bson:"created_at"`
	TotalOrders int       `bson:"total_orders"`
}

// DeriveCustomersFromOrders backfills the customers collection from order
// history: one record per distinct contact email, taking the first shipping
// name seen and the earliest order timestamp. Groups without an email are
// skipped. Returns the number of customers inserted.
func (s *Store) DeriveCustomersFromOrders(ctx context.Context) (int, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$contact.email"},
			{Key: "full_name", Value: bson.D{{Key: "$first", Value: "$shipping.name"}}},
			{Key: "created_at", Value: bson.D{{Key: "$min", Value: "$created_at"}}},
			{Key: "total_orders", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}

	cursor, err := s.orders().Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate orders: %w", err)
	}

	groups := []customerGroup{}
	if err := cursor.All(ctx, &groups); err != nil {
		return 0, fmt.Errorf("failed to decode order groups: %w", err)
	}

	inserted := 0
	for _, g := range groups {
		if g.Email == "" {
			continue
		}

		customer := entity.Customer{
			FullName:    g.FullName,
			Email:       g.Email,
			CreatedAt:   g.CreatedAt,
			TotalOrders: g.TotalOrders,
		}
		if customer.FullName == "" {
			customer.FullName = "Unknown"
		}
		if customer.CreatedAt.IsZero() {
			customer.CreatedAt = time.Now().UTC()
		}

		if _, err := s.customers().InsertOne(ctx, customer); err != nil {
			return inserted, fmt.Errorf("failed to insert derived customer: %w", err)
		}
		inserted++
	}
	return inserted, nil
}
