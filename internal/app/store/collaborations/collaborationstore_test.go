package collaborationstore_test

import (
	"context"
	"errors"
	"testing"

	collaborationstore "github.com/dalemusser/collabhub/internal/app/store/collaborations"
	"github.com/dalemusser/collabhub/internal/app/system/indexes"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"github.com/dalemusser/collabhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func loadProject(t *testing.T, f *testutil.Fixtures, id primitive.ObjectID) models.Project {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	var p models.Project
	if err := f.DB().Collection("projects").FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		t.Fatalf("failed to load project: %v", err)
	}
	return p
}

func TestStore_ExpressInterest_CreatesPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collaborationstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "creator", "creator@example.com", "password123")
	user := fixtures.CreateUser(ctx, "contributor", "contrib@example.com", "password123")
	project := fixtures.CreateProject(ctx, creator.ID, "Search Engine", 3)

	collab, created, err := store.ExpressInterest(ctx, project.ID, user.ID)
	if err != nil {
		t.Fatalf("ExpressInterest failed: %v", err)
	}
	if !created {
		t.Error("expected created=true for first interest")
	}
	if collab.Accepted {
		t.Error("fresh request should not be accepted")
	}
	if collab.ProjectID != project.ID || collab.UserID != user.ID {
		t.Errorf("collaboration keyed wrong: %+v", collab)
	}
}

func TestStore_ExpressInterest_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	if err := indexes.EnsureAll(indexCtx(t), db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	store := collaborationstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "creator", "creator@example.com", "password123")
	user := fixtures.CreateUser(ctx, "contributor", "contrib@example.com", "password123")
	project := fixtures.CreateProject(ctx, creator.ID, "Search Engine", 3)

	first, created, err := store.ExpressInterest(ctx, project.ID, user.ID)
	if err != nil || !created {
		t.Fatalf("first ExpressInterest: created=%v err=%v", created, err)
	}

	second, created, err := store.ExpressInterest(ctx, project.ID, user.ID)
	if err != nil {
		t.Fatalf("second ExpressInterest failed: %v", err)
	}
	if created {
		t.Error("expected created=false for repeat interest")
	}
	if second.ID != first.ID {
		t.Errorf("expected existing document back, got %v want %v", second.ID, first.ID)
	}

	count, err := db.Collection("collaborations").CountDocuments(ctx, bson.M{"project_id": project.ID, "user_id": user.ID})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one collaboration document, got %d", count)
	}
}

func TestStore_ExpressInterest_MissingProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collaborationstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "contributor", "contrib@example.com", "password123")

	_, _, err := store.ExpressInterest(ctx, primitive.NewObjectID(), user.ID)
	if !errors.Is(err, collaborationstore.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestStore_Accept_ByCreator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collaborationstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "creator", "creator@example.com", "password123")
	user := fixtures.CreateUser(ctx, "contributor", "contrib@example.com", "password123")
	project := fixtures.CreateProject(ctx, creator.ID, "Search Engine", 3)
	collab := fixtures.CreateCollaboration(ctx, project.ID, user.ID, false)

	if err := store.Accept(ctx, collab.ID, creator.ID); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}

	got, err := store.GetByID(ctx, collab.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.Accepted {
		t.Error("expected collaboration to be accepted")
	}

	p := loadProject(t, fixtures, project.ID)
	if len(p.CollaboratorIDs) != 1 || p.CollaboratorIDs[0] != user.ID {
		t.Errorf("expected collaborator set [%v], got %v", user.ID, p.CollaboratorIDs)
	}
}

func TestStore_Accept_NotCreator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collaborationstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "creator", "creator@example.com", "password123")
	user := fixtures.CreateUser(ctx, "contributor", "contrib@example.com", "password123")
	stranger := fixtures.CreateUser(ctx, "stranger", "stranger@example.com", "password123")
	project := fixtures.CreateProject(ctx, creator.ID, "Search Engine", 3)
	collab := fixtures.CreateCollaboration(ctx, project.ID, user.ID, false)

	// Neither a random user nor the requesting user may accept.
	for _, caller := range []primitive.ObjectID{stranger.ID, user.ID} {
		if err := store.Accept(ctx, collab.ID, caller); !errors.Is(err, collaborationstore.ErrNotFound) {
			t.Errorf("caller %v: expected ErrNotFound, got %v", caller, err)
		}
	}

	got, err := store.GetByID(ctx, collab.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Accepted {
		t.Error("collaboration must stay pending after denied accepts")
	}
	p := loadProject(t, fixtures, project.ID)
	if len(p.CollaboratorIDs) != 0 {
		t.Errorf("collaborator set must stay empty, got %v", p.CollaboratorIDs)
	}
}

func TestStore_Accept_MissingCollaboration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collaborationstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "creator", "creator@example.com", "password123")

	if err := store.Accept(ctx, primitive.NewObjectID(), creator.ID); !errors.Is(err, collaborationstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Accept_AlreadyAccepted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collaborationstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "creator", "creator@example.com", "password123")
	user := fixtures.CreateUser(ctx, "contributor", "contrib@example.com", "password123")
	project := fixtures.CreateProject(ctx, creator.ID, "Search Engine", 1)
	collab := fixtures.CreateCollaboration(ctx, project.ID, user.ID, true)

	// Re-accepting is a no-op even with the project at capacity.
	if err := store.Accept(ctx, collab.ID, creator.ID); err != nil {
		t.Fatalf("re-accept failed: %v", err)
	}

	p := loadProject(t, fixtures, project.ID)
	if len(p.CollaboratorIDs) != 1 {
		t.Errorf("collaborator set must not grow, got %v", p.CollaboratorIDs)
	}
}

func TestStore_Accept_ProjectFull(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collaborationstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "creator", "creator@example.com", "password123")
	first := fixtures.CreateUser(ctx, "first", "first@example.com", "password123")
	second := fixtures.CreateUser(ctx, "second", "second@example.com", "password123")
	project := fixtures.CreateProject(ctx, creator.ID, "Search Engine", 1)

	fixtures.CreateCollaboration(ctx, project.ID, first.ID, true)
	pending := fixtures.CreateCollaboration(ctx, project.ID, second.ID, false)

	err := store.Accept(ctx, pending.ID, creator.ID)
	if !errors.Is(err, collaborationstore.ErrProjectFull) {
		t.Fatalf("expected ErrProjectFull, got %v", err)
	}

	got, err := store.GetByID(ctx, pending.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Accepted {
		t.Error("request must stay pending when the project is full")
	}
	p := loadProject(t, fixtures, project.ID)
	if len(p.CollaboratorIDs) != 1 {
		t.Errorf("collaborator set overshot capacity: %v", p.CollaboratorIDs)
	}
}

func TestStore_Accept_ConvergesFromStaleMembership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collaborationstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "creator", "creator@example.com", "password123")
	user := fixtures.CreateUser(ctx, "contributor", "contrib@example.com", "password123")
	project := fixtures.CreateProject(ctx, creator.ID, "Search Engine", 2)
	collab := fixtures.CreateCollaboration(ctx, project.ID, user.ID, false)

	// Legacy data written before the paired writes were transactional
	// could hold the user in collaborator_ids with the request still
	// pending. Accept must converge instead of duplicating the entry.
	if _, err := fixtures.DB().Collection("projects").UpdateOne(ctx,
		bson.M{"_id": project.ID},
		bson.M{"$addToSet": bson.M{"collaborator_ids": user.ID}},
	); err != nil {
		t.Fatalf("failed to seed stale membership: %v", err)
	}

	if err := store.Accept(ctx, collab.ID, creator.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	got, err := store.GetByID(ctx, collab.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.Accepted {
		t.Error("request must be accepted")
	}
	p := loadProject(t, fixtures, project.ID)
	if len(p.CollaboratorIDs) != 1 {
		t.Errorf("collaborator set must hold exactly one entry, got %v", p.CollaboratorIDs)
	}
}

func TestStore_Decline_Pending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collaborationstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "creator", "creator@example.com", "password123")
	user := fixtures.CreateUser(ctx, "contributor", "contrib@example.com", "password123")
	project := fixtures.CreateProject(ctx, creator.ID, "Search Engine", 3)
	collab := fixtures.CreateCollaboration(ctx, project.ID, user.ID, false)

	if err := store.Decline(ctx, collab.ID, creator.ID); err != nil {
		t.Fatalf("Decline failed: %v", err)
	}

	if _, err := store.GetByID(ctx, collab.ID); !errors.Is(err, collaborationstore.ErrNotFound) {
		t.Fatalf("expected request gone, got %v", err)
	}
}

func TestStore_Decline_AcceptedRemovesMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collaborationstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "creator", "creator@example.com", "password123")
	user := fixtures.CreateUser(ctx, "contributor", "contrib@example.com", "password123")
	project := fixtures.CreateProject(ctx, creator.ID, "Search Engine", 3)
	collab := fixtures.CreateCollaboration(ctx, project.ID, user.ID, true)

	if err := store.Decline(ctx, collab.ID, creator.ID); err != nil {
		t.Fatalf("Decline failed: %v", err)
	}

	p := loadProject(t, fixtures, project.ID)
	if len(p.CollaboratorIDs) != 0 {
		t.Errorf("expected user removed from collaborator set, got %v", p.CollaboratorIDs)
	}
}

func TestStore_Decline_NotCreator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := collaborationstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "creator", "creator@example.com", "password123")
	user := fixtures.CreateUser(ctx, "contributor", "contrib@example.com", "password123")
	project := fixtures.CreateProject(ctx, creator.ID, "Search Engine", 3)
	collab := fixtures.CreateCollaboration(ctx, project.ID, user.ID, false)

	if err := store.Decline(ctx, collab.ID, user.ID); !errors.Is(err, collaborationstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := store.GetByID(ctx, collab.ID); err != nil {
		t.Fatalf("request must survive a denied decline: %v", err)
	}
}

func TestStore_DeclineThenReExpress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	if err := indexes.EnsureAll(indexCtx(t), db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	store := collaborationstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fixtures.CreateUser(ctx, "creator", "creator@example.com", "password123")
	user := fixtures.CreateUser(ctx, "contributor", "contrib@example.com", "password123")
	project := fixtures.CreateProject(ctx, creator.ID, "Search Engine", 3)

	first, _, err := store.ExpressInterest(ctx, project.ID, user.ID)
	if err != nil {
		t.Fatalf("ExpressInterest failed: %v", err)
	}
	if err := store.Decline(ctx, first.ID, creator.ID); err != nil {
		t.Fatalf("Decline failed: %v", err)
	}

	second, created, err := store.ExpressInterest(ctx, project.ID, user.ID)
	if err != nil {
		t.Fatalf("re-express failed: %v", err)
	}
	if !created {
		t.Error("expected a fresh request after decline")
	}
	if second.ID == first.ID {
		t.Error("expected a new document, got the declined one back")
	}
	if second.Accepted {
		t.Error("fresh request must be pending")
	}
}

func indexCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	t.Cleanup(cancel)
	return ctx
}
