// internal/app/features/collaborations/handler.go
package collaborations

import (
	collaborationstore "github.com/dalemusser/collabhub/internal/app/store/collaborations"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the collaborations feature.
type Handler struct {
	Collabs *collaborationstore.Store
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Collabs: collaborationstore.New(db, logger),
		Log:     logger,
	}
}
