// internal/domain/models/question.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reading stages in which a question can be asked.
const (
	StagePre    = "pre"
	StageDuring = "during"
	StagePost   = "post"
)

// StageName returns the Korean display name for a reading stage, or the
// stage itself when it is not one of the known values.
func StageName(stage string) string {
	switch stage {
	case StagePre:
		return "읽기 전"
	case StageDuring:
		return "읽기 중"
	case StagePost:
		return "읽기 후"
	}
	return stage
}

// Question is a student question about an article.
//
// ArticleID is a free string and is never checked against the articles
// collection; a mistyped activity code simply yields an empty gallery.
// Likes only ever increase and are not attributed to anyone.
type Question struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ArticleID string             `bson:"article_id" json:"articleId"`
	Nickname  string             `bson:"nickname" json:"nickname"`
	Stage     string             `bson:"stage" json:"stage"`
	Text      string             `bson:"text" json:"text"`
	Likes     int64              `bson:"likes" json:"likes"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// Answer is a reply to a Question. Answers are append-only.
type Answer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuestionID string             `bson:"question_id" json:"questionId"`
	Nickname   string             `bson:"nickname" json:"nickname"`
	Text       string             `bson:"text" json:"text"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}

// QuestionWithAnswers pairs a question with its (capped) answer list, as
// shown in the question gallery.
type QuestionWithAnswers struct {
	Question Question `json:"question"`
	Answers  []Answer `json:"answers"`
}
