package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teetribe/shop-api/internal/entity"
)

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	Categories []string
	MinPrice   *float64
	MaxPrice   *float64
	Query      string
}

// buildProductFilter translates a ProductFilter into a Mongo query document.
// The free-text query matches name, description, category, or any meta
// keyword as a case-insensitive substring.
func buildProductFilter(f ProductFilter) bson.M {
	filter := bson.M{}

	if len(f.Categories) > 0 {
		filter["category"] = bson.M{"$in": f.Categories}
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		rng := bson.M{}
		if f.MinPrice != nil {
			rng["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			rng["$lte"] = *f.MaxPrice
		}
		filter["price"] = rng
	}

	if f.Query != "" {
		q := ciContains(f.Query)
		filter["$or"] = bson.A{
			bson.M{"name": q},
			bson.M{"description": q},
			bson.M{"category": q},
			bson.M{"meta_keywords": bson.M{"$elemMatch": bson.M{"$regex": q}}},
		}
	}

	return filter
}

// ListProducts returns one page of matching products plus the total count
// for the same filter, so pagination never changes the reported total.
func (s *Store) ListProducts(ctx context.Context, f ProductFilter, page, limit int) ([]entity.Product, int64, error) {
	filter := buildProductFilter(f)

	total, err := s.products().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	skip := int64((page - 1) * limit)
	opts := options.Find().SetSkip(skip).SetLimit(int64(limit))
	cursor, err := s.products().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}

	items := []entity.Product{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}
	return items, total, nil
}

// GetProductBySlug does an anchored, case-insensitive slug match.
func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	var p entity.Product
	err := s.products().FindOne(ctx, bson.M{"slug": ciExact(slug)}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &p, nil
}

// SlugExists reports whether another product already uses the slug.
// excludeID, when non-empty, leaves the document being updated out of the
// check. The pre-check is not transactional; a race between two concurrent
// creates with the same slug is caught by the unique index, not here.
func (s *Store) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	filter := bson.M{"slug": ciExact(slug)}
	if excludeID != "" {
		id, err := oid(excludeID)
		if err != nil {
			return false, err
		}
		filter["_id"] = bson.M{"$ne": id}
	}

	count, err := s.products().CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return count > 0, nil
}

// CreateProduct inserts the product and fills in its generated id.
func (s *Store) CreateProduct(ctx context.Context, p *entity.Product) error {
	res, err := s.products().InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: slug %q", ErrConflict, p.Slug)
		}
		return fmt.Errorf("failed to insert product: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

// UpdateProduct applies a $set of the given fields to the product.
func (s *Store) UpdateProduct(ctx context.Context, id string, fields bson.M) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}

	res, err := s.products().UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes the product, reporting ErrNotFound when nothing
// matched.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}

	res, err := s.products().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountProducts returns the total catalog size for the dashboard.
func (s *Store) CountProducts(ctx context.Context) (int64, error) {
	total, err := s.products().CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// CountProductsInCategory counts products linked to the category by name.
func (s *Store) CountProductsInCategory(ctx context.Context, name string) (int64, error) {
	count, err := s.products().CountDocuments(ctx, bson.M{"category": name})
	if err != nil {
		return 0, fmt.Errorf("failed to count products in category: %w", err)
	}
	return count, nil
}
