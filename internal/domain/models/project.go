// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is a collaboration project seeking contributors.
//
// CollaboratorIDs is the canonical membership set: a user appears here
// exactly when the creator has accepted their collaboration request.
// Invariant: len(CollaboratorIDs) <= MaxCollaborators, enforced by the
// collaboration store at accept time.
type Project struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	CreatorID        primitive.ObjectID   `bson:"creator_id" json:"creator_id"`
	Name             string               `bson:"name" json:"project_name"`
	NameCI           string               `bson:"name_ci" json:"-"`
	Description      string               `bson:"description" json:"description"`
	MaxCollaborators int                  `bson:"maximum_collaborators" json:"maximum_collaborators"`
	CollaboratorIDs  []primitive.ObjectID `bson:"collaborator_ids" json:"collaborators"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
