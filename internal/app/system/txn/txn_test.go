// internal/app/system/txn/txn_test.go
package txn

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/collabhub/internal/testutil"
)

func TestIsNotSupported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "unrelated error", err: errors.New("connection reset by peer"), want: false},
		{
			name: "command error code 20",
			err:  mongo.CommandError{Code: 20, Message: "Transaction numbers are only allowed on a replica set member or mongos"},
			want: true,
		},
		{
			name: "command error code 51",
			err:  mongo.CommandError{Code: 51, Message: "Illegal operation"},
			want: true,
		},
		{
			name: "command error code 263",
			err:  mongo.CommandError{Code: 263, Message: "Cannot run command in a multi-document transaction"},
			want: true,
		},
		{
			name: "command error with unrelated code",
			err:  mongo.CommandError{Code: 100, Message: "something else went wrong"},
			want: false,
		},
		{
			name: "transaction plus replica set keywords",
			err:  errors.New("transaction failed: this node is not a replica set member"),
			want: true,
		},
		{
			name: "session plus not supported keywords",
			err:  errors.New("session operations are not supported by this server"),
			want: true,
		},
		{
			name: "transaction plus session keywords",
			err:  errors.New("cannot start transaction in current session state"),
			want: true,
		},
		{
			name: "illegal operation keywords",
			err:  errors.New("illegal operation during transaction"),
			want: true,
		},
		{
			name: "single keyword alone",
			err:  errors.New("transaction failed"),
			want: false,
		},
		{
			name: "keywords in upper case",
			err:  errors.New("TRANSACTION aborted: REPLICA SET unavailable"),
			want: true,
		},
		{
			name: "keywords in mixed case",
			err:  errors.New("Transaction Session expired"),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotSupported(tt.err); got != tt.want {
				t.Errorf("IsNotSupported(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

// Against a standalone local Mongo the fallback path runs fn without a
// session; against a replica set the writes go through a transaction.
// Either way both inserts must land and fn's error must propagate.
func TestRunAppliesWrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	coll := db.Collection("txn_smoke")
	log := zap.NewNop()

	err := Run(ctx, db, log, func(ctx context.Context) error {
		if _, err := coll.InsertOne(ctx, bson.M{"step": 1}); err != nil {
			return err
		}
		_, err := coll.InsertOne(ctx, bson.M{"step": 2})
		return err
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	n, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 documents, got %d", n)
	}
}

func TestRunPropagatesFnError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sentinel := errors.New("refused")
	err := Run(ctx, db, zap.NewNop(), func(ctx context.Context) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
}
