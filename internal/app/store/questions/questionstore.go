// internal/app/store/questions/questionstore.go
package questionstore

import (
	"context"
	"time"

	"github.com/dalemusser/readalong/internal/app/system/apierr"
	"github.com/dalemusser/readalong/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. Answers are logically a sub-collection of a question
// (questions/{id}/answers); here they live in one collection keyed by
// question_id.
const (
	QuestionsCollection = "questions"
	AnswersCollection   = "answers"
)

// AnswerLimit caps how many answers ListAnswers returns. There is no
// cursor, so answers past the cap are not reachable through this store.
const AnswerLimit = 50

var (
	// ErrNotConfigured is returned by writes when no document store is configured.
	ErrNotConfigured = apierr.ErrNotConfigured
	// ErrNotFound is returned by Like when the question does not exist.
	ErrNotFound = apierr.NotFound("question not found")
)

// NewQuestion is the input to AddQuestion.
type NewQuestion struct {
	ArticleID string `json:"articleId"`
	Nickname  string `json:"nickname"`
	Stage     string `json:"stage"`
	Text      string `json:"text"`
}

// NewAnswer is the input to AddAnswer.
type NewAnswer struct {
	QuestionID string `json:"questionId"`
	Nickname   string `json:"nickname"`
	Text       string `json:"text"`
}

// Store manages questions and their answers.
// A Store built with a nil database is unconfigured: writes fail with
// ErrNotConfigured and reads return empty results.
type Store struct {
	q *mongo.Collection
	a *mongo.Collection
}

// New creates a Store. db may be nil.
func New(db *mongo.Database) *Store {
	if db == nil {
		return &Store{}
	}
	return &Store{
		q: db.Collection(QuestionsCollection),
		a: db.Collection(AnswersCollection),
	}
}

// Configured reports whether the store has backing collections.
func (s *Store) Configured() bool { return s.q != nil }

// AddQuestion inserts a question with zero likes and returns its id.
// Stage is stored as given; nothing is de-duplicated or length-checked.
func (s *Store) AddQuestion(ctx context.Context, in NewQuestion) (string, error) {
	if s.q == nil {
		return "", ErrNotConfigured
	}
	q := models.Question{
		ID:        primitive.NewObjectID(),
		ArticleID: in.ArticleID,
		Nickname:  in.Nickname,
		Stage:     in.Stage,
		Text:      in.Text,
		Likes:     0,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.q.InsertOne(ctx, q); err != nil {
		return "", err
	}
	return q.ID.Hex(), nil
}

// ListByArticle returns every question for articleID, newest first.
//
// The ordering is the global creation order (descending) restricted to
// the article, with _id as a tie-breaker, so the result equals a full scan
// of the collection filtered afterwards. The filter runs in the query.
func (s *Store) ListByArticle(ctx context.Context, articleID string) ([]models.Question, error) {
	if s.q == nil {
		return []models.Question{}, nil
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := s.q.Find(ctx, bson.M{"article_id": articleID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Question{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Like adds exactly one to a question's like counter. The increment is a
// single $inc, so concurrent likes are never lost.
func (s *Store) Like(ctx context.Context, id string) error {
	if s.q == nil {
		return ErrNotConfigured
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.q.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"likes": 1}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddAnswer inserts an answer under in.QuestionID and returns its id.
// The parent question is not checked for existence.
func (s *Store) AddAnswer(ctx context.Context, in NewAnswer) (string, error) {
	if s.a == nil {
		return "", ErrNotConfigured
	}
	a := models.Answer{
		ID:         primitive.NewObjectID(),
		QuestionID: in.QuestionID,
		Nickname:   in.Nickname,
		Text:       in.Text,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.a.InsertOne(ctx, a); err != nil {
		return "", err
	}
	return a.ID.Hex(), nil
}

// ListAnswers returns up to AnswerLimit answers for questionID, oldest first.
func (s *Store) ListAnswers(ctx context.Context, questionID string) ([]models.Answer, error) {
	if s.a == nil {
		return []models.Answer{}, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(AnswerLimit)
	cur, err := s.a.Find(ctx, bson.M{"question_id": questionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Answer{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Gallery returns the article's questions (newest first), each with its
// answers, using one answers read per question.
func (s *Store) Gallery(ctx context.Context, articleID string) ([]models.QuestionWithAnswers, error) {
	qs, err := s.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	out := make([]models.QuestionWithAnswers, 0, len(qs))
	for _, q := range qs {
		as, err := s.ListAnswers(ctx, q.ID.Hex())
		if err != nil {
			return nil, err
		}
		out = append(out, models.QuestionWithAnswers{Question: q, Answers: as})
	}
	return out, nil
}
