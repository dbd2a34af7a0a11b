package tokenstore_test

import (
	"testing"

	tokenstore "github.com/dalemusser/collabhub/internal/app/store/tokens"
	"github.com/dalemusser/collabhub/internal/app/system/indexes"
	"github.com/dalemusser/collabhub/internal/testutil"
	"go.uber.org/zap"
)

func TestStore_GetOrCreate_Stable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	store := tokenstore.New(db)
	user := fixtures.CreateUser(ctx, "alice", "alice@example.com", "password123")

	first, err := store.GetOrCreate(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if first.Key == "" {
		t.Fatal("expected a token key")
	}

	// Logging in again returns the same token, not a new one.
	second, err := store.GetOrCreate(ctx, user.ID)
	if err != nil {
		t.Fatalf("second GetOrCreate failed: %v", err)
	}
	if second.Key != first.Key {
		t.Errorf("token rotated unexpectedly: %q then %q", first.Key, second.Key)
	}
}

func TestStore_DeleteByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := tokenstore.New(db)
	user := fixtures.CreateUser(ctx, "alice", "alice@example.com", "password123")

	tok, err := store.GetOrCreate(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}

	deleted, err := store.DeleteByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("DeleteByUser failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 token deleted, got %d", deleted)
	}

	// The deleted token no longer authenticates.
	fetcher := tokenstore.NewFetcher(db)
	if p := fetcher.FetchByKey(ctx, tok.Key); p != nil {
		t.Errorf("expected nil principal for revoked token, got %+v", p)
	}
}

func TestFetcher_FetchByKey(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := tokenstore.New(db)
	user := fixtures.CreateUser(ctx, "alice", "alice@example.com", "password123")

	tok, err := store.GetOrCreate(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}

	p := tokenstore.NewFetcher(db).FetchByKey(ctx, tok.Key)
	if p == nil {
		t.Fatal("expected a principal for a valid token")
	}
	if p.ID != user.ID.Hex() || p.Username != "alice" {
		t.Errorf("principal mismatch: %+v", p)
	}

	if p := tokenstore.NewFetcher(db).FetchByKey(ctx, "not-a-token"); p != nil {
		t.Errorf("expected nil principal for unknown key, got %+v", p)
	}
}
