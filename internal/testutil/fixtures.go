package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/collabhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given username and email.
// The password is bcrypt-hashed at minimum cost to keep tests fast.
func (f *Fixtures) CreateUser(ctx context.Context, username, email, password string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		UsernameCI:   text.Fold(username),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err = f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateProject creates a test project owned by creatorID with the
// given capacity and an empty collaborator set.
func (f *Fixtures) CreateProject(ctx context.Context, creatorID primitive.ObjectID, name string, maxCollaborators int) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	project := models.Project{
		ID:               primitive.NewObjectID(),
		CreatorID:        creatorID,
		Name:             name,
		NameCI:           text.Fold(name),
		Description:      "Test project description",
		MaxCollaborators: maxCollaborators,
		CollaboratorIDs:  []primitive.ObjectID{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err := f.db.Collection("projects").InsertOne(ctx, project)
	if err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}

	return project
}

// CreateCollaboration creates a collaboration request in the given
// state. When accepted is true, the user is also added to the project's
// collaborator set so the document matches what the store produces.
func (f *Fixtures) CreateCollaboration(ctx context.Context, projectID, userID primitive.ObjectID, accepted bool) models.Collaboration {
	f.t.Helper()

	collab := models.Collaboration{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		UserID:    userID,
		Accepted:  accepted,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("collaborations").InsertOne(ctx, collab)
	if err != nil {
		f.t.Fatalf("failed to create test collaboration: %v", err)
	}

	if accepted {
		_, err := f.db.Collection("projects").UpdateOne(ctx,
			bson.M{"_id": projectID},
			bson.M{"$addToSet": bson.M{"collaborator_ids": userID}},
		)
		if err != nil {
			f.t.Fatalf("failed to add test collaborator: %v", err)
		}
	}

	return collab
}

// CreateSkill creates a test skill owned by userID.
func (f *Fixtures) CreateSkill(ctx context.Context, userID primitive.ObjectID, name, level string) models.Skill {
	f.t.Helper()

	skill := models.Skill{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Name:      name,
		Level:     level,
		CreatedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("skills").InsertOne(ctx, skill)
	if err != nil {
		f.t.Fatalf("failed to create test skill: %v", err)
	}

	return skill
}
