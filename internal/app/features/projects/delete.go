// internal/app/features/projects/delete.go
package projects

import (
	"context"
	"errors"
	"net/http"

	projectstore "github.com/dalemusser/collabhub/internal/app/store/projects"
	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /delete_project/{projectID}/. Only the
// creator can delete; anyone else gets the same 404 an absent id gets.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	callerID, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Project not found.")
		return
	}

	// Cascade removal of collaboration rows rides on the same call, so
	// give it the long budget.
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Projects.DeleteOwned(ctx, projectID, callerID); err != nil {
		if errors.Is(err, projectstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Project not found.")
			return
		}
		h.Log.Warn("project delete failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	httpjson.Message(w, http.StatusOK, "Project deleted successfully.")
}
