// internal/app/features/collaborations/accept.go
package collaborations

import (
	"context"
	"errors"
	"net/http"

	collaborationstore "github.com/dalemusser/collabhub/internal/app/store/collaborations"
	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleAccept handles POST /accept_collaboration/{collabID}/. Creator
// only; a non-creator gets the same 404 a bad id does. 409 when the
// project's member set is already at capacity.
func (h *Handler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	callerID, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	collabID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "collabID"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Collaboration request not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Collabs.Accept(ctx, collabID, callerID); err != nil {
		switch {
		case errors.Is(err, collaborationstore.ErrNotFound):
			httpjson.Error(w, http.StatusNotFound, "Collaboration request not found.")
		case errors.Is(err, collaborationstore.ErrProjectFull):
			httpjson.Error(w, http.StatusConflict, "Project already has the maximum number of collaborators.")
		default:
			h.Log.Warn("accept collaboration failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		}
		return
	}

	httpjson.Message(w, http.StatusOK, "Collaboration request accepted.")
}
