package health_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/collabhub/internal/app/features/health"
	"github.com/dalemusser/collabhub/internal/testutil"
	"go.uber.org/zap"
)

func TestServeHealth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := health.NewHandler(db.Client(), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]string
	testutil.DecodeJSON(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("status field: got %q", body["status"])
	}
	if body["database"] != "ok" {
		t.Errorf("database field: got %q", body["database"])
	}
}
