// internal/app/features/skills/remove.go
package skills

import (
	"context"
	"errors"
	"net/http"

	skillstore "github.com/dalemusser/collabhub/internal/app/store/skills"
	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleRemove handles DELETE /remove_skill/{skillID}/. Another user's
// skill id gets the same 404 an absent one does.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	callerID, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	skillID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "skillID"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Skill not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Skills.Remove(ctx, skillID, callerID); err != nil {
		if errors.Is(err, skillstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Skill not found.")
			return
		}
		h.Log.Warn("skill remove failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	httpjson.Message(w, http.StatusOK, "Skill removed successfully.")
}
