// internal/app/store/queries/statsqueries/userstats.go
package statsqueries

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserStats holds the per-user project counts the statistics endpoint
// reports. Contributed counts projects whose membership set contains the
// user; created counts projects the user owns.
type UserStats struct {
	ProjectsContributed int64 `json:"projects_contributed"`
	ProjectsCreated     int64 `json:"projects_created"`
}

// ForUser computes the counts with two index-backed CountDocuments
// calls. Pure read, no side effects.
func ForUser(ctx context.Context, db *mongo.Database, userID primitive.ObjectID) (UserStats, error) {
	projects := db.Collection("projects")

	contributed, err := projects.CountDocuments(ctx, bson.M{"collaborator_ids": userID})
	if err != nil {
		return UserStats{}, err
	}
	created, err := projects.CountDocuments(ctx, bson.M{"creator_id": userID})
	if err != nil {
		return UserStats{}, err
	}

	return UserStats{
		ProjectsContributed: contributed,
		ProjectsCreated:     created,
	}, nil
}
