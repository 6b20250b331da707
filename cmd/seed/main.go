// Command seed prepares the database: indexes on the products collection
// and a sample catalog inserted only when the collection is empty.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teetribe/shop-api/internal/config"
	"github.com/teetribe/shop-api/internal/entity"
	"github.com/teetribe/shop-api/internal/store"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		slog.Error("Failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB)

	if err := ensureIndexes(ctx, db); err != nil {
		slog.Error("Failed to create indexes", "err", err)
		os.Exit(1)
	}

	if err := seedProducts(ctx, db); err != nil {
		slog.Error("Failed to seed products", "err", err)
		os.Exit(1)
	}

	slog.Info("Database ready", "uri", cfg.MongoURI, "db", cfg.MongoDB)
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	products := db.Collection("products")
	_, err := products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	})
	if err != nil {
		return err
	}

	slog.Info("Indexes ensured", "collection", "products")
	return nil
}

func seedProducts(ctx context.Context, db *mongo.Database) error {
	products := db.Collection("products")

	count, err := products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		slog.Info("Products already seeded, skipping", "count", count)
		return nil
	}

	now := time.Now().UTC()
	catalog := []entity.Product{
		{
			Name:         "Classic Crew Tee",
			Slug:         "classic-crew-tee",
			Category:     "T-Shirts",
			Price:        2499,
			Image:        "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400",
			Description:  "Heavyweight cotton crew neck with a relaxed fit.",
			Sizes:        []string{"S", "M", "L", "XL"},
			Colors:       []string{"Black", "White", "Navy"},
			MetaKeywords: []string{"cotton tee", "crew neck t-shirt", "basic tee"},
		},
		{
			Name:         "Oversized Graphic Tee",
			Slug:         "oversized-graphic-tee",
			Category:     "T-Shirts",
			Price:        2999,
			Image:        "https://images.unsplash.com/photo-1576566588028-4147f3842f27?w=400",
			Description:  "Drop-shoulder oversized tee with front print.",
			Sizes:        []string{"M", "L", "XL"},
			Colors:       []string{"Off-White", "Charcoal"},
			MetaKeywords: []string{"oversized tee", "graphic t-shirt", "streetwear"},
		},
		{
			Name:         "Zip-Up Hoodie",
			Slug:         "zip-up-hoodie",
			Category:     "Hoodies",
			Price:        5499,
			Image:        "https://images.unsplash.com/photo-1556821840-3a63f95609a7?w=400",
			Description:  "Brushed fleece zip hoodie with kangaroo pockets.",
			Sizes:        []string{"S", "M", "L", "XL"},
			Colors:       []string{"Grey", "Black"},
			MetaKeywords: []string{"zip hoodie", "fleece hoodie", "casual wear"},
		},
		{
			Name:         "Relaxed Joggers",
			Slug:         "relaxed-joggers",
			Category:     "Bottoms",
			Price:        4299,
			Image:        "https://images.unsplash.com/photo-1552902865-b72c031ac5ea?w=400",
			Description:  "Tapered joggers in soft terry with an elastic cuff.",
			Sizes:        []string{"S", "M", "L"},
			Colors:       []string{"Olive", "Black", "Sand"},
			MetaKeywords: []string{"joggers", "sweatpants", "loungewear"},
		},
	}

	categories := map[string]bool{}
	docs := make([]interface{}, 0, len(catalog))
	for _, p := range catalog {
		p.CreatedAt = now
		p.UpdatedAt = now
		docs = append(docs, p)
		categories[p.Category] = true
	}

	if _, err := products.InsertMany(ctx, docs); err != nil {
		return err
	}
	slog.Info("Seeded products", "count", len(docs))

	s := store.New(db)
	for name := range categories {
		if err := s.EnsureCategory(ctx, name); err != nil {
			return err
		}
	}
	slog.Info("Seeded categories", "count", len(categories))
	return nil
}
