// internal/app/features/skills/handler.go
package skills

import (
	skillstore "github.com/dalemusser/collabhub/internal/app/store/skills"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the skills feature.
type Handler struct {
	Skills *skillstore.Store
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Skills: skillstore.New(db),
		Log:    logger,
	}
}
