// Package store is the MongoDB data access layer. Each handler operation
// maps onto one or two collection calls here; errors that callers branch on
// are the two sentinels below.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound signals that the targeted document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict signals a duplicate unique key (slug or category name).
	ErrConflict = errors.New("already exists")
)

const connectTimeout = 10 * time.Second

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	slog.Info("Database connected", "uri", uri)
	return client, nil
}

// Store wraps the shared database handle. It is safe for concurrent use;
// the driver maintains its own connection pool.
type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) products() *mongo.Collection   { return s.db.Collection("products") }
func (s *Store) reviews() *mongo.Collection    { return s.db.Collection("reviews") }
func (s *Store) carts() *mongo.Collection      { return s.db.Collection("carts") }
func (s *Store) orders() *mongo.Collection     { return s.db.Collection("orders") }
func (s *Store) categories() *mongo.Collection { return s.db.Collection("categories") }
func (s *Store) customers() *mongo.Collection  { return s.db.Collection("customers") }

// ciExact builds an anchored case-insensitive match for a user-supplied
// value. The value is quoted so it can never act as a regex.
func ciExact(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

// ciContains builds a case-insensitive substring match, quoted like ciExact.
func ciContains(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

// oid parses a client-supplied hex id. Malformed ids behave like missing
// documents rather than server errors.
func oid(id string) (primitive.ObjectID, error) {
	parsed, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", ErrNotFound, id)
	}
	return parsed, nil
}
