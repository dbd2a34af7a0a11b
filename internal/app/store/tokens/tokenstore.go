// internal/app/store/tokens/tokenstore.go
package tokenstore

import (
	"context"
	"time"

	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/dalemusser/collabhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store manages API tokens. One token per user: login hands back the
// existing token when there is one, matching get-or-create semantics.
type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("auth_tokens"),
		users: db.Collection("users"),
	}
}

// GetOrCreate returns the user's token, creating one when absent.
// The unique user_id index makes concurrent logins converge on a single
// token: the loser of the insert race re-reads the winner's document.
func (s *Store) GetOrCreate(ctx context.Context, userID primitive.ObjectID) (models.AuthToken, error) {
	var tok models.AuthToken
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&tok)
	if err == nil {
		return tok, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.AuthToken{}, err
	}

	tok = models.AuthToken{
		ID:        primitive.NewObjectID(),
		Key:       uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, tok); err != nil {
		if wafflemongo.IsDup(err) {
			var existing models.AuthToken
			if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&existing); err != nil {
				return models.AuthToken{}, err
			}
			return existing, nil
		}
		return models.AuthToken{}, err
	}
	return tok, nil
}

// DeleteByUser revokes the user's token (logout).
// Returns the number of documents deleted (0 or 1).
func (s *Store) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Fetcher implements auth.TokenFetcher: it resolves a presented token
// key to its owning user, or nil for unknown keys.
type Fetcher struct {
	store *Store
}

// NewFetcher creates the token resolver used by the auth middleware.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{store: New(db)}
}

// FetchByKey looks up the token and loads its owner.
func (f *Fetcher) FetchByKey(ctx context.Context, key string) *auth.Principal {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var tok models.AuthToken
	if err := f.store.c.FindOne(ctx, bson.M{"key": key}).Decode(&tok); err != nil {
		return nil
	}

	var u models.User
	if err := f.store.users.FindOne(ctx, bson.M{"_id": tok.UserID}).Decode(&u); err != nil {
		return nil
	}

	return &auth.Principal{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Email:    u.Email,
	}
}
