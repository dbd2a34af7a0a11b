// internal/domain/models/skill.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Skill is a self-reported proficiency owned by a single user.
type Skill struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"-"`
	Name   string             `bson:"name" json:"name"`
	Level  string             `bson:"level" json:"level"` // e.g. beginner, intermediate, advanced

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
