// internal/app/store/collaborations/collaborationstore.go
package collaborationstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/collabhub/internal/app/system/txn"
	"github.com/dalemusser/collabhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when a collaboration is absent under the
	// caller's scope. Accept and decline report the same error whether
	// the row does not exist or the caller is not the project's creator,
	// so existence never leaks to non-owners.
	ErrNotFound = errors.New("collaboration request not found")
	// ErrProjectNotFound is returned by ExpressInterest for a missing project.
	ErrProjectNotFound = errors.New("project not found")
	// ErrProjectFull is returned by Accept once the project's member set
	// has reached maximum_collaborators.
	ErrProjectFull = errors.New("project already has the maximum number of collaborators")
)

// Store is the collaboration engine. It owns the collaborations
// collection and maintains the project membership set as requests are
// accepted and declined.
type Store struct {
	db       *mongo.Database
	c        *mongo.Collection
	projects *mongo.Collection
	log      *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		db:       db,
		c:        db.Collection("collaborations"),
		projects: db.Collection("projects"),
		log:      logger,
	}
}

// ExpressInterest records userID's interest in projectID with
// get-or-create semantics: created=true for a fresh pending request,
// created=false when one already exists (either state). The unique
// (project_id, user_id) index closes the concurrent-insert race; the
// loser re-reads the winner's document.
func (s *Store) ExpressInterest(ctx context.Context, projectID, userID primitive.ObjectID) (models.Collaboration, bool, error) {
	err := s.projects.FindOne(ctx, bson.M{"_id": projectID}).Err()
	if err == mongo.ErrNoDocuments {
		return models.Collaboration{}, false, ErrProjectNotFound
	}
	if err != nil {
		return models.Collaboration{}, false, err
	}

	collab := models.Collaboration{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		UserID:    userID,
		Accepted:  false,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, collab); err != nil {
		if wafflemongo.IsDup(err) {
			var existing models.Collaboration
			if err := s.c.FindOne(ctx, bson.M{"project_id": projectID, "user_id": userID}).Decode(&existing); err != nil {
				return models.Collaboration{}, false, err
			}
			return existing, false, nil
		}
		return models.Collaboration{}, false, err
	}
	return collab, true, nil
}

// Accept marks the request accepted and adds the user to the project's
// membership set. Only the project's creator may accept; a missing row
// and a non-creator caller both come back as ErrNotFound. The creator
// check, the capacity check, and the set insertion are one conditional
// update, so two concurrent accepts cannot push the set past
// maximum_collaborators. The membership update and the accepted flag
// land in one transaction: a failure between them cannot leave a user
// in collaborator_ids with the request still pending.
func (s *Store) Accept(ctx context.Context, collabID, callerID primitive.ObjectID) error {
	var collab models.Collaboration
	if err := s.c.FindOne(ctx, bson.M{"_id": collabID}).Decode(&collab); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return err
	}

	if collab.Accepted {
		// Re-accept is a no-op, but still only for the creator.
		return s.requireCreator(ctx, collab.ProjectID, callerID)
	}

	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		res, err := s.projects.UpdateOne(ctx,
			bson.M{
				"_id":        collab.ProjectID,
				"creator_id": callerID,
				"$expr": bson.M{"$lt": bson.A{
					bson.M{"$size": "$collaborator_ids"},
					"$maximum_collaborators",
				}},
			},
			bson.M{
				"$addToSet": bson.M{"collaborator_ids": collab.UserID},
				"$set":      bson.M{"updated_at": time.Now().UTC()},
			},
		)
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			// Either the caller is not the creator (or the project is gone),
			// or the project is at capacity. Tell them apart with a scoped read.
			if err := s.requireCreator(ctx, collab.ProjectID, callerID); err != nil {
				return err
			}
			return ErrProjectFull
		}

		_, err = s.c.UpdateOne(ctx, bson.M{"_id": collabID}, bson.M{"$set": bson.M{"accepted": true}})
		return err
	})
}

// Decline deletes the request permanently. Valid from pending or
// accepted state; an accepted user is removed from the project's
// membership set. Creator-only, with the same ErrNotFound conflation as
// Accept. creator_id is immutable, so verifying ownership before the
// scoped delete leaves no exploitable window. The row delete and the
// membership removal ride in one transaction so an accepted user never
// lingers in collaborator_ids after their request row is gone.
func (s *Store) Decline(ctx context.Context, collabID, callerID primitive.ObjectID) error {
	var collab models.Collaboration
	if err := s.c.FindOne(ctx, bson.M{"_id": collabID}).Decode(&collab); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return err
	}

	if err := s.requireCreator(ctx, collab.ProjectID, callerID); err != nil {
		return err
	}

	return txn.Run(ctx, s.db, s.log, func(ctx context.Context) error {
		res, err := s.c.DeleteOne(ctx, bson.M{"_id": collabID, "project_id": collab.ProjectID})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return ErrNotFound
		}

		if collab.Accepted {
			_, err = s.projects.UpdateOne(ctx,
				bson.M{"_id": collab.ProjectID},
				bson.M{
					"$pull": bson.M{"collaborator_ids": collab.UserID},
					"$set":  bson.M{"updated_at": time.Now().UTC()},
				},
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID loads a collaboration by id, unscoped. Test and internal use.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Collaboration, error) {
	var collab models.Collaboration
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&collab); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &collab, nil
}

// requireCreator resolves to nil only when callerID created projectID.
// Absent project and wrong caller are both ErrNotFound.
func (s *Store) requireCreator(ctx context.Context, projectID, callerID primitive.ObjectID) error {
	err := s.projects.FindOne(ctx, bson.M{"_id": projectID, "creator_id": callerID}).Err()
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}
