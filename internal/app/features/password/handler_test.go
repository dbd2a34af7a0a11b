package password_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/collabhub/internal/app/features/password"
	"github.com/dalemusser/collabhub/internal/app/store/passwordreset"
	userstore "github.com/dalemusser/collabhub/internal/app/store/users"
	"github.com/dalemusser/collabhub/internal/app/system/mailer"
	"github.com/dalemusser/collabhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*password.Handler, *testutil.Fixtures, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	resets := passwordreset.New(db, 30*time.Minute)
	// Points at a port nothing listens on; send failures are logged,
	// not surfaced, so tests run without an SMTP server.
	mail := mailer.New("localhost", 19925, "", "", "noreply@test.local", "CollabHub Test", zap.NewNop())

	h := password.NewHandler(db, resets, mail, "http://localhost:3000", zap.NewNop())
	return h, testutil.NewFixtures(t, db), db
}

func TestHandleChange_Success(t *testing.T) {
	h, fixtures, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "alice", "alice@example.com", "oldpassword1")

	req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/change_password/", map[string]string{
		"old_password": "oldpassword1",
		"new_password": "newpassword2",
	}, user)
	rec := httptest.NewRecorder()
	h.HandleChange(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	users := userstore.New(db)
	reloaded, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if err := users.CheckPassword(reloaded, "newpassword2"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestHandleChange_WrongOldPassword(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "alice", "alice@example.com", "oldpassword1")

	req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/change_password/", map[string]string{
		"old_password": "not-the-password",
		"new_password": "newpassword2",
	}, user)
	rec := httptest.NewRecorder()
	h.HandleChange(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleChange_ShortNewPassword(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "alice", "alice@example.com", "oldpassword1")

	req := testutil.NewAuthenticatedJSONRequest(t, http.MethodPost, "/change_password/", map[string]string{
		"old_password": "oldpassword1",
		"new_password": "short",
	}, user)
	rec := httptest.NewRecorder()
	h.HandleChange(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleResetRequest_UniformResponse(t *testing.T) {
	h, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "alice", "alice@example.com", "password123")

	// Known and unknown addresses get the identical answer.
	for _, email := range []string{"alice@example.com", "nobody@example.com"} {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/password_reset/", map[string]string{"email": email})
		rec := httptest.NewRecorder()
		h.HandleResetRequest(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s: status got %d (body %s)", email, rec.Code, rec.Body.String())
		}
	}
}

func TestPasswordReset_FullFlow(t *testing.T) {
	h, fixtures, db := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "alice", "alice@example.com", "password123")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/password_reset/", map[string]string{"email": "alice@example.com"})
	rec := httptest.NewRecorder()
	h.HandleResetRequest(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset request: got %d", rec.Code)
	}

	// Grab the token that would have been emailed.
	var stored passwordreset.Reset
	if err := db.Collection("password_resets").FindOne(ctx, bson.M{"user_id": user.ID}).Decode(&stored); err != nil {
		t.Fatalf("expected a stored reset record: %v", err)
	}

	req = testutil.NewJSONRequest(t, http.MethodPost, "/password_reset/confirm/", map[string]string{
		"token":    stored.Token,
		"password": "resetpassword9",
	})
	rec = httptest.NewRecorder()
	h.HandleResetConfirm(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset confirm: got %d (body %s)", rec.Code, rec.Body.String())
	}

	users := userstore.New(db)
	reloaded, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if err := users.CheckPassword(reloaded, "resetpassword9"); err != nil {
		t.Errorf("reset password rejected: %v", err)
	}

	// The token is single use.
	req = testutil.NewJSONRequest(t, http.MethodPost, "/password_reset/confirm/", map[string]string{
		"token":    stored.Token,
		"password": "anotherpass10",
	})
	rec = httptest.NewRecorder()
	h.HandleResetConfirm(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("token reuse: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleResetConfirm_UnknownToken(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/password_reset/confirm/", map[string]string{
		"token":    "not-a-real-token",
		"password": "resetpassword9",
	})
	rec := httptest.NewRecorder()
	h.HandleResetConfirm(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
