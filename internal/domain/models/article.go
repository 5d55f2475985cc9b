// internal/domain/models/article.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article kinds, as sent by the reading UI.
const (
	KindDescriptive = "설명"
	KindOpinion     = "의견"
)

// Article difficulties.
const (
	DifficultyHigh   = "상"
	DifficultyMedium = "중"
	DifficultyLow    = "하"
)

// DemoArticleID is the activity code a session starts with before the
// user sets or generates one.
const DemoArticleID = "demo-article"

// Article is a generated reading passage. It is immutable once saved.
// The hex form of ID is the "activity code" shared out-of-band so other
// sessions can join the same activity.
type Article struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind       string             `bson:"kind" json:"kind"`
	Difficulty string             `bson:"difficulty" json:"difficulty"`
	Topic      string             `bson:"topic,omitempty" json:"topic,omitempty"`
	Title      string             `bson:"title" json:"title"`
	Body       string             `bson:"body" json:"body"`
	ImageURL   string             `bson:"image_url" json:"imageUrl"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}

// ArticleInput holds the user-supplied fields of an Article; the store
// assigns ID and CreatedAt.
type ArticleInput struct {
	Kind       string `json:"kind"`
	Difficulty string `json:"difficulty"`
	Topic      string `json:"topic,omitempty"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	ImageURL   string `json:"imageUrl"`
}

// Input returns the user-supplied fields of a.
func (a *Article) Input() ArticleInput {
	return ArticleInput{
		Kind:       a.Kind,
		Difficulty: a.Difficulty,
		Topic:      a.Topic,
		Title:      a.Title,
		Body:       a.Body,
		ImageURL:   a.ImageURL,
	}
}
