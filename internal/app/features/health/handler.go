// internal/app/features/health/handler.go
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/collabhub/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler serves the liveness endpoint for load balancers and
// orchestrators.
type Handler struct {
	client *mongo.Client
	log    *zap.Logger
}

func NewHandler(client *mongo.Client, logger *zap.Logger) *Handler {
	return &Handler{client: client, log: logger}
}

// ServeHealth reports ok plus database reachability. The endpoint stays
// 200 even when the DB ping fails so orchestrators can tell "process up,
// DB down" apart from "process down".
func (h *Handler) ServeHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if err := h.client.Ping(ctx, readpref.Primary()); err != nil {
		h.log.Warn("health check: mongo ping failed", zap.Error(err))
		dbStatus = "unreachable"
	}

	httpjson.Write(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": dbStatus,
	})
}
