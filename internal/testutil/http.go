package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/dalemusser/collabhub/internal/domain/models"
)

// WithUser adds a user to the request context for testing authenticated
// handlers. This bypasses the auth middleware and injects the principal
// directly.
func WithUser(r *http.Request, user models.User) *http.Request {
	return auth.WithTestUser(r, &auth.Principal{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Email:    user.Email,
	})
}

// NewJSONRequest creates an HTTP request carrying a JSON body.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewAuthenticatedJSONRequest creates a JSON request with the user's
// principal in context.
func NewAuthenticatedJSONRequest(t *testing.T, method, target string, body any, user models.User) *http.Request {
	t.Helper()
	return WithUser(NewJSONRequest(t, method, target, body), user)
}

// DecodeJSON decodes the recorder's body into v, failing the test on a
// malformed response.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response body %q: %v", rec.Body.String(), err)
	}
}
