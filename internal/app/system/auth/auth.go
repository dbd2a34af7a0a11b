// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Principal & context plumbing                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// Principal is the authenticated user injected into r.Context().
// Every core operation reads the caller from here; nothing below the
// middleware inspects cookies or tokens.
type Principal struct {
	ID       string
	Username string
	Email    string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the principal and a found flag.
func CurrentUser(r *http.Request) (*Principal, bool) {
	u, ok := r.Context().Value(currentUserKey).(*Principal)
	return u, ok
}

func withUser(r *http.Request, u *Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a principal directly, bypassing session and token
// lookup. Test helper only.
func WithTestUser(r *http.Request, u *Principal) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Fetchers                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// UserFetcher loads fresh user data for a session's user ID on each
// request, so profile changes and deleted accounts take effect
// immediately. Returns nil when the user no longer exists.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *Principal
}

// TokenFetcher resolves an opaque API token key to its owner.
// Returns nil for unknown or revoked keys.
type TokenFetcher interface {
	FetchByKey(ctx context.Context, key string) *Principal
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

const userIDKey = "user_id"

// SessionManager owns the cookie store and the principal-resolution
// middleware. API clients authenticate with an Authorization header
// ("Token <key>" or "Bearer <key>", both accepted); browser clients get
// a session cookie at login. The header wins when both are present.
type SessionManager struct {
	store  *sessions.CookieStore
	name   string
	users  UserFetcher
	tokens TokenFetcher
	log    *zap.Logger
}

// NewSessionManager builds the cookie store. In production (secure=true)
// cookies are Secure + SameSite=None; in dev, Lax over plain HTTP.
func NewSessionManager(sessionKey, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// SetUserFetcher installs the per-request user loader for session auth.
func (sm *SessionManager) SetUserFetcher(f UserFetcher) { sm.users = f }

// SetTokenFetcher installs the API token resolver.
func (sm *SessionManager) SetTokenFetcher(f TokenFetcher) { sm.tokens = f }

// LoadPrincipal resolves the caller (token header, then session cookie)
// and injects the Principal into context. Unauthenticated requests pass
// through untouched; RequireSignedIn does the gating.
func (sm *SessionManager) LoadPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key := bearerKey(r); key != "" && sm.tokens != nil {
			if u := sm.tokens.FetchByKey(r.Context(), key); u != nil {
				next.ServeHTTP(w, withUser(r, u))
				return
			}
			// A presented-but-invalid token never falls back to the cookie.
			next.ServeHTTP(w, r)
			return
		}

		sess, _ := sm.store.Get(r, sm.name)
		if id, ok := sess.Values[userIDKey].(string); ok && id != "" && sm.users != nil {
			if u := sm.users.FetchUser(r.Context(), id); u != nil {
				r = withUser(r, u)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures a principal is present, else 401 JSON.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			httpjson.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SignIn records the user in the session cookie.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[userIDKey] = userID
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Options.MaxAge = -1
	delete(sess.Values, userIDKey)
	if err := sess.Save(r, w); err != nil {
		sm.log.Warn("session clear failed", zap.Error(err))
	}
}

// bearerKey extracts the opaque key from the Authorization header.
// Both "Token <key>" and "Bearer <key>" are accepted.
func bearerKey(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	for _, prefix := range []string{"Token ", "Bearer "} {
		if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
			return strings.TrimSpace(h[len(prefix):])
		}
	}
	return ""
}
