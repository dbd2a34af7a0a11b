package login_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/collabhub/internal/app/features/login"
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/dalemusser/collabhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*login.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	sm, err := auth.NewSessionManager("test-session-key-0123456789-abcdefghij", "collabhub-test", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}

	return login.NewHandler(db, sm, zap.NewNop()), testutil.NewFixtures(t, db)
}

func postLogin(t *testing.T, h *login.Handler, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.NewJSONRequest(t, http.MethodPost, "/login/", map[string]string{
		"username": username,
		"password": password,
	})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)
	return rec
}

func TestHandleLogin_Success(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "alice", "alice@example.com", "password123")

	rec := postLogin(t, h, "alice", "password123")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}

	var body map[string]string
	testutil.DecodeJSON(t, rec, &body)
	if body["token"] == "" {
		t.Fatal("expected a token in the response")
	}

	// Logging in again returns the same token.
	again := postLogin(t, h, "alice", "password123")
	var body2 map[string]string
	testutil.DecodeJSON(t, again, &body2)
	if body2["token"] != body["token"] {
		t.Errorf("token changed across logins: %q then %q", body["token"], body2["token"])
	}
}

func TestHandleLogin_ByEmail(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "alice", "alice@example.com", "password123")

	rec := postLogin(t, h, "alice@example.com", "password123")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d (body %s)", rec.Code, rec.Body.String())
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateUser(ctx, "alice", "alice@example.com", "password123")

	rec := postLogin(t, h, "alice", "wrongwrong")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHandleLogin_UnknownUser(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postLogin(t, h, "nobody", "password123")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHandleLogin_MissingFields(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postLogin(t, h, "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
