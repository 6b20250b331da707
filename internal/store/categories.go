package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teetribe/shop-api/internal/entity"
)

// ListCategories returns all categories.
func (s *Store) ListCategories(ctx context.Context) ([]entity.Category, error) {
	cursor, err := s.categories().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	categories := []entity.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

// CreateCategory inserts the category after a case-insensitive duplicate
// name check.
func (s *Store) CreateCategory(ctx context.Context, c *entity.Category) error {
	err := s.categories().FindOne(ctx, bson.M{"name": ciExact(c.Name)}).Err()
	if err == nil {
		return fmt.Errorf("%w: category %q", ErrConflict, c.Name)
	}
	if err != mongo.ErrNoDocuments {
		return fmt.Errorf("failed to check category: %w", err)
	}

	res, err := s.categories().InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}
	return nil
}

// EnsureCategory creates an Active category for the name unless one already
// exists (case-insensitive). Used by product create to keep the denormalized
// category link resolvable.
func (s *Store) EnsureCategory(ctx context.Context, name string) error {
	err := s.categories().FindOne(ctx, bson.M{"name": ciExact(name)}).Err()
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return fmt.Errorf("failed to check category: %w", err)
	}

	_, err = s.categories().InsertOne(ctx, entity.Category{
		Name:      name,
		Status:    entity.DefaultCategoryStatus,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to auto-create category: %w", err)
	}
	return nil
}

// UpdateCategory applies a $set of the given fields to the category.
func (s *Store) UpdateCategory(ctx context.Context, id string, fields bson.M) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}

	res, err := s.categories().UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory removes the category, reporting ErrNotFound when nothing
// matched. Products keep their free-text category link; nothing cascades.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}

	res, err := s.categories().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
