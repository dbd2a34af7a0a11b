// internal/app/features/collaborations/interest.go
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

// HandleExpressInterest handles POST /express_interest/{projectID}/.
// Idempotent: a fresh pending request is 201, an existing one (pending
// or accepted) is 200. The creator may express interest in their own
// project; nothing forbids it.
func (h *Handler) HandleExpressInterest(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	_, created, err := h.Collabs.ExpressInterest(ctx, projectID, callerID)
	if err != nil {
		if errors.Is(err, collaborationstore.ErrProjectNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Project not found.")
			return
		}
		h.Log.Warn("express interest failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	if created {
		httpjson.Message(w, http.StatusCreated, "Interest expressed successfully.")
		return
	}
	httpjson.Message(w, http.StatusOK, "You have already expressed interest in this project.")
}
