// internal/app/features/collaborations/decline.go
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

// HandleDecline handles POST /decline_collaboration/{collabID}/. The
// request row is deleted, so the user can express interest again later.
func (h *Handler) HandleDecline(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Collabs.Decline(ctx, collabID, callerID); err != nil {
		if errors.Is(err, collaborationstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Collaboration request not found.")
			return
		}
		h.Log.Warn("decline collaboration failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	httpjson.Message(w, http.StatusOK, "Collaboration request declined and deleted.")
}
