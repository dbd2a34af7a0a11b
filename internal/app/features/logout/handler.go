// internal/app/features/logout/handler.go
package logout

import (
	"context"
	"net/http"

	tokenstore "github.com/dalemusser/collabhub/internal/app/store/tokens"
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler signs callers out by revoking their API token and clearing
// the session cookie.
type Handler struct {
	Tokens     *tokenstore.Store
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Tokens:     tokenstore.New(db),
		SessionMgr: sm,
		Log:        logger,
	}
}

// HandleLogout handles POST /logout/. Deleting the token invalidates it
// everywhere, not just for this client.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Tokens.DeleteByUser(ctx, userID); err != nil {
		h.Log.Warn("token revoke failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	h.SessionMgr.SignOut(w, r)
	httpjson.Message(w, http.StatusOK, "Successfully logged out.")
}
