// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account on the platform. Usernames and emails are unique;
// the _ci fields hold folded values for case-insensitive lookups.
//
// NOTE:
//   - Project membership is not embedded on User.
//     Use the collaborations collection to discover a user's requests,
//     and Project.CollaboratorIDs for accepted membership.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username   string             `bson:"username" json:"username"`
	UsernameCI string             `bson:"username_ci" json:"-"`
	Email      string             `bson:"email" json:"email"`
	FirstName  string             `bson:"first_name,omitempty" json:"first_name,omitempty"`
	LastName   string             `bson:"last_name,omitempty" json:"last_name,omitempty"`
	Age        *int               `bson:"age,omitempty" json:"age,omitempty"`
	Country    string             `bson:"country,omitempty" json:"country,omitempty"`
	Residence  string             `bson:"residence,omitempty" json:"residence,omitempty"`

	PasswordHash string `bson:"password_hash" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
