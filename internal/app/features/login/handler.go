// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"
	"strings"

	tokenstore "github.com/dalemusser/collabhub/internal/app/store/tokens"
	userstore "github.com/dalemusser/collabhub/internal/app/store/users"
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler authenticates users and issues API tokens.
type Handler struct {
	Users      *userstore.Store
	Tokens     *tokenstore.Store
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      userstore.New(db),
		Tokens:     tokenstore.New(db),
		SessionMgr: sm,
		Log:        logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin handles POST /login/. The username field accepts either a
// username or an email address (an @ pivots to email lookup). Success
// returns the caller's API token and also sets a session cookie for
// browser clients. Unknown account and wrong password are not
// distinguished.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil || req.Username == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.lookup(ctx, req.Username)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			h.Log.Warn("login lookup failed", zap.Error(err))
		}
		httpjson.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := h.Users.CheckPassword(user, req.Password); err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	tok, err := h.Tokens.GetOrCreate(ctx, user.ID)
	if err != nil {
		h.Log.Warn("token issue failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, user.ID.Hex()); err != nil {
		h.Log.Warn("session save failed", zap.Error(err))
	}

	httpjson.Write(w, http.StatusOK, map[string]string{"token": tok.Key})
}

// lookup resolves the identifier to a user: emails (containing @) are
// tried as email first, then as a literal username.
func (h *Handler) lookup(ctx context.Context, identifier string) (*models.User, error) {
	if strings.Contains(identifier, "@") {
		if user, err := h.Users.GetByEmail(ctx, identifier); err == nil {
			return user, nil
		}
	}
	return h.Users.GetByUsername(ctx, identifier)
}
