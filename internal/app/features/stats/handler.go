// internal/app/features/stats/handler.go
package stats

import (
	"context"
	"net/http"

	"github.com/dalemusser/collabhub/internal/app/store/queries/statsqueries"
	"github.com/dalemusser/collabhub/internal/app/system/authz"
	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the per-user statistics read.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// HandleUserStatistics handles GET /user_statistics/ for the signed-in
// caller.
func (h *Handler) HandleUserStatistics(w http.ResponseWriter, r *http.Request) {
	callerID, _, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	counts, err := statsqueries.ForUser(ctx, h.DB, callerID)
	if err != nil {
		h.Log.Warn("user statistics failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "a database error occurred")
		return
	}

	httpjson.Write(w, http.StatusOK, counts)
}
