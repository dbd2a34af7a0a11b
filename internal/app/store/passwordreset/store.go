// internal/app/store/passwordreset/store.go
package passwordreset

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultExpiry is how long a reset token is valid.
const DefaultExpiry = 30 * time.Minute

// ErrNotFound is returned for an unknown, expired, or already-used token.
var ErrNotFound = errors.New("password reset token not found or expired")

// Reset is a pending password reset, keyed by the emailed token.
type Reset struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Token     string             `bson:"token"`
	ExpiresAt time.Time          `bson:"expires_at"` // TTL index field
	CreatedAt time.Time          `bson:"created_at"`
}

// Store manages password reset records.
type Store struct {
	c      *mongo.Collection
	expiry time.Duration
}

// New creates a Store. If expiry is 0 or negative, DefaultExpiry is used.
func New(db *mongo.Database, expiry time.Duration) *Store {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Store{c: db.Collection("password_resets"), expiry: expiry}
}

// Expiry returns the configured token lifetime.
func (s *Store) Expiry() time.Duration { return s.expiry }

// EnsureIndexes creates the TTL index and the token/user lookup indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_pwreset_expires_ttl").SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetName("idx_pwreset_token"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_pwreset_user"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create issues a new reset token for the user, replacing any previous
// one, and returns the token to email to them.
func (s *Store) Create(ctx context.Context, userID primitive.ObjectID) (string, error) {
	now := time.Now().UTC()
	rec := Reset{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(s.expiry),
		CreatedAt: now,
	}

	// One live reset per user: drop older requests first.
	if _, err := s.c.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return "", err
	}
	if _, err := s.c.InsertOne(ctx, rec); err != nil {
		return "", err
	}
	return rec.Token, nil
}

// Consume looks up a live token, deletes it, and returns the owning
// user. The single-statement FindOneAndDelete makes a token work exactly
// once even under concurrent confirmations.
func (s *Store) Consume(ctx context.Context, token string) (primitive.ObjectID, error) {
	var rec Reset
	err := s.c.FindOneAndDelete(ctx, bson.M{
		"token":      token,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return primitive.NilObjectID, ErrNotFound
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	return rec.UserID, nil
}
