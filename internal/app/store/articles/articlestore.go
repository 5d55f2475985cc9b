// internal/app/store/articles/articlestore.go
package articlestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/readalong/internal/app/system/apierr"
	"github.com/dalemusser/readalong/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection is the Mongo collection holding articles.
const Collection = "articles"

// ErrNotConfigured is returned by writes when no document store is configured.
var ErrNotConfigured = apierr.ErrNotConfigured

// Store persists generated articles. A Store built with a nil database is
// "unconfigured": writes fail with ErrNotConfigured and reads report absent.
type Store struct {
	c *mongo.Collection
}

// New creates a Store. db may be nil.
func New(db *mongo.Database) *Store {
	if db == nil {
		return &Store{}
	}
	return &Store{c: db.Collection(Collection)}
}

// Configured reports whether the store has a backing collection.
func (s *Store) Configured() bool { return s.c != nil }

// Save inserts a new article and returns its activity code.
// The id and created_at are assigned here; there is no duplicate detection.
func (s *Store) Save(ctx context.Context, in models.ArticleInput) (string, error) {
	if s.c == nil {
		return "", ErrNotConfigured
	}
	a := models.Article{
		ID:         primitive.NewObjectID(),
		Kind:       in.Kind,
		Difficulty: in.Difficulty,
		Topic:      in.Topic,
		Title:      in.Title,
		Body:       in.Body,
		ImageURL:   in.ImageURL,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return "", err
	}
	return a.ID.Hex(), nil
}

// Get loads an article by activity code.
// It returns (nil, nil) when the store is unconfigured, when id is not a
// well-formed code, or when no such article exists; callers cannot tell
// these cases apart.
func (s *Store) Get(ctx context.Context, id string) (*models.Article, error) {
	if s.c == nil {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var a models.Article
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
