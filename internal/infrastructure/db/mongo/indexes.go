package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. The unique
// username index fails to build while duplicate usernames exist.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	users := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_unique"),
		},
		{Keys: bson.D{{Key: "cohort", Value: 1}}},
	}
	if _, err := db.Collection(collectionUsers).Indexes().CreateMany(ctx, users); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	projects := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}},
	}
	if _, err := db.Collection(collectionProjects).Indexes().CreateMany(ctx, projects); err != nil {
		return fmt.Errorf("projects indexes: %w", err)
	}
	return nil
}
