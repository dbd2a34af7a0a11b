// internal/app/features/projects/handler.go
package projects

import (
	projectstore "github.com/dalemusser/collabhub/internal/app/store/projects"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the projects feature.
type Handler struct {
	Projects *projectstore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Projects: projectstore.New(db, logger),
		Log:      logger,
	}
}
