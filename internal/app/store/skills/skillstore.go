// internal/app/store/skills/skillstore.go
package skillstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/collabhub/internal/app/system/normalize"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound covers both an absent skill id and one owned by another
// user; owner-scoped lookups do not distinguish the two.
var ErrNotFound = errors.New("skill not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("skills")}
}

// Add creates a skill owned by userID.
func (s *Store) Add(ctx context.Context, userID primitive.ObjectID, name, level string) (models.Skill, error) {
	skill := models.Skill{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Name:      normalize.Name(name),
		Level:     normalize.Name(level),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, skill); err != nil {
		return models.Skill{}, err
	}
	return skill, nil
}

// Remove deletes a skill in a single owner-scoped statement.
func (s *Store) Remove(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser returns the user's skills, oldest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Skill, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	skills := []models.Skill{}
	if err := cur.All(ctx, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}
