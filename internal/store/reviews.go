package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/teetribe/shop-api/internal/entity"
)

// ListReviews returns all reviews referencing the product id.
func (s *Store) ListReviews(ctx context.Context, productID string) ([]entity.Review, error) {
	cursor, err := s.reviews().Find(ctx, bson.M{"product_id": productID})
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}

	reviews := []entity.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// CreateReview inserts the review and fills in its generated id.
func (s *Store) CreateReview(ctx context.Context, r *entity.Review) error {
	res, err := s.reviews().InsertOne(ctx, r)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		r.ID = id
	}
	return nil
}

// DeleteReview removes the review, reporting ErrNotFound when nothing
// matched.
func (s *Store) DeleteReview(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}

	res, err := s.reviews().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
