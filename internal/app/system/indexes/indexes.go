// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail
fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	if err := ensureUsers(ctx, db, logger); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureProjects(ctx, db, logger); err != nil {
		problems = append(problems, "projects: "+err.Error())
	}
	if err := ensureCollaborations(ctx, db, logger); err != nil {
		problems = append(problems, "collaborations: "+err.Error())
	}
	if err := ensureSkills(ctx, db, logger); err != nil {
		problems = append(problems, "skills: "+err.Error())
	}
	if err := ensureAuthTokens(ctx, db, logger); err != nil {
		problems = append(problems, "auth_tokens: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel, logger *zap.Logger) error {
	start := time.Now()
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	logger.Info("ensured indexes",
		zap.String("collection", coll.Name()),
		zap.Int("count", len(models)),
		zap.String("took", time.Since(start).String()))
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_username_ci"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
	}, logger)
}

func ensureProjects(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	c := db.Collection("projects")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "creator_id", Value: 1}},
			Options: options.Index().SetName("idx_projects_creator"),
		},
		// Statistics counts membership via this multikey index.
		{
			Keys:    bson.D{{Key: "collaborator_ids", Value: 1}},
			Options: options.Index().SetName("idx_projects_collaborators"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_projects_created"),
		},
	}, logger)
}

func ensureCollaborations(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	c := db.Collection("collaborations")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Exactly one request per (project, user); express-interest relies
		// on the duplicate-key error for its get-or-create.
		{
			Keys:    bson.D{{Key: "project_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_collab_project_user"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_collab_user"),
		},
	}, logger)
}

func ensureSkills(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	c := db.Collection("skills")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_skills_user"),
		},
	}, logger)
}

func ensureAuthTokens(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	c := db.Collection("auth_tokens")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_tokens_key"),
		},
		// One token per user; login's get-or-create races resolve here.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_tokens_user"),
		},
	}, logger)
}
