// internal/domain/models/collaboration.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collaboration links one user to one project with a pending/accepted
// state. Exactly one document per (project_id, user_id); the unique
// index makes the pair constraint physical. Declining deletes the
// document outright, so "declined" is never a stored state.
type Collaboration struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID primitive.ObjectID `bson:"project_id" json:"project_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Accepted  bool               `bson:"accepted" json:"accepted"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
