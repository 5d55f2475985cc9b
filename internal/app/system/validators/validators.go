// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates the reading-activity collections (if missing) and tries
// to attach JSON-Schema validators. The schemas pin field presence and BSON
// types only; user-supplied values such as kind or stage are not
// constrained. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("articles", articlesSchema())
	ensure("questions", questionsSchema())
	ensure("answers", answersSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers ---------------------- */

// ensureCollection idempotently makes sure name exists.
// Returns created==true only if it was actually created.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	names, listErr := db.ListCollectionNames(ctx, bson.M{"name": name})
	if listErr == nil && len(names) > 0 {
		zap.L().Debug("collection exists", zap.String("collection", name))
		return false, nil
	}
	// Listing failed or the collection is missing; create and tolerate a race.
	if err := db.CreateCollection(ctx, name); err != nil {
		if isCommandErr(err, 48, "already exists", "namespace exists") {
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

// isCommandErr reports whether err is a server command error with the given
// code, or mentions one of phrases.
func isCommandErr(err error, code int32, phrases ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func isNoSuchCommand(err error) bool { return isCommandErr(err, 59, "no such command") }

func isNotImplemented(err error) bool {
	return isCommandErr(err, 115, "not implemented", "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var (
	str  = bson.M{"bsonType": "string"}
	date = bson.M{"bsonType": "date"}
)

func articlesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"kind", "difficulty", "title", "body", "image_url", "created_at"},
			"properties": bson.M{
				"kind":       str,
				"difficulty": str,
				"topic":      str,
				"title":      str,
				"body":       str,
				"image_url":  str,
				"created_at": date,
			},
		},
	}
}

func questionsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"article_id", "nickname", "stage", "text", "likes", "created_at"},
			"properties": bson.M{
				"article_id": str,
				"nickname":   str,
				"stage":      str,
				"text":       str,
				"likes":      bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"created_at": date,
			},
		},
	}
}

func answersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"question_id", "nickname", "text", "created_at"},
			"properties": bson.M{
				"question_id": str,
				"nickname":    str,
				"text":        str,
				"created_at":  date,
			},
		},
	}
}
