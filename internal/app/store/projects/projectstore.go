// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/collabhub/internal/app/system/normalize"
	"github.com/dalemusser/collabhub/internal/app/system/txn"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a project is absent under the caller's
// scope. Creator-scoped operations deliberately do not distinguish
// "does not exist" from "not yours".
var ErrNotFound = errors.New("project not found")

type Store struct {
	db      *mongo.Database
	c       *mongo.Collection
	collabs *mongo.Collection
	log     *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		db:      db,
		c:       db.Collection("projects"),
		collabs: db.Collection("collaborations"),
		log:     logger,
	}
}

// Create inserts a new project owned by creatorID with an empty
// collaborator set. No uniqueness constraint on name.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	p.ID = primitive.NewObjectID()
	p.Name = normalize.Name(p.Name)
	p.NameCI = text.Fold(p.Name)
	p.CollaboratorIDs = []primitive.ObjectID{}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// GetByID loads a project by ObjectID, unscoped. This is the only
// project read open to any authenticated user; callers use it to check
// existence before expressing interest.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListAll returns every project, newest first. "Open" projects are all
// projects regardless of fill state.
func (s *Store) ListAll(ctx context.Context) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	projects := []models.Project{}
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// DeleteOwned deletes a project in a single creator-scoped statement and
// cascades to its collaborations, both inside one transaction so a
// failure cannot strand collaboration rows pointing at a dead project.
// ErrNotFound covers both an absent id and a caller who is not the
// creator.
func (s *Store) DeleteOwned(ctx context.Context, id, creatorID primitive.ObjectID) error {
	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "creator_id": creatorID})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return ErrNotFound
		}

		// Ownership cascade: collaboration rows die with their project.
		if _, err := s.collabs.DeleteMany(ctx, bson.M{"project_id": id}); err != nil {
			return err
		}
		return nil
	})
}
