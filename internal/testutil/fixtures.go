package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/readalong/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data directly in
// the collections, bypassing the stores.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateArticle inserts an article with the given title.
func (f *Fixtures) CreateArticle(ctx context.Context, title string) models.Article {
	f.t.Helper()

	a := models.Article{
		ID:         primitive.NewObjectID(),
		Kind:       models.KindDescriptive,
		Difficulty: models.DifficultyMedium,
		Title:      title,
		Body:       "본문",
		ImageURL:   "https://placehold.co/800x480",
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := f.db.Collection("articles").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test article: %v", err)
	}
	return a
}

// CreateQuestion inserts a question with an explicit creation time so
// ordering tests are deterministic.
func (f *Fixtures) CreateQuestion(ctx context.Context, articleID, text string, createdAt time.Time) models.Question {
	f.t.Helper()

	q := models.Question{
		ID:        primitive.NewObjectID(),
		ArticleID: articleID,
		Nickname:  "tester",
		Stage:     models.StagePre,
		Text:      text,
		CreatedAt: createdAt.UTC(),
	}
	if _, err := f.db.Collection("questions").InsertOne(ctx, q); err != nil {
		f.t.Fatalf("failed to create test question: %v", err)
	}
	return q
}

// CreateAnswer inserts an answer with an explicit creation time.
func (f *Fixtures) CreateAnswer(ctx context.Context, questionID, text string, createdAt time.Time) models.Answer {
	f.t.Helper()

	a := models.Answer{
		ID:         primitive.NewObjectID(),
		QuestionID: questionID,
		Nickname:   "tester",
		Text:       text,
		CreatedAt:  createdAt.UTC(),
	}
	if _, err := f.db.Collection("answers").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test answer: %v", err)
	}
	return a
}
