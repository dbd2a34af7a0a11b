// internal/app/features/password/handler.go
package password

import (
	"github.com/dalemusser/collabhub/internal/app/store/passwordreset"
	userstore "github.com/dalemusser/collabhub/internal/app/store/users"
	"github.com/dalemusser/collabhub/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SiteName appears in outbound reset emails.
const SiteName = "CollabHub"

// Handler covers password change for signed-in users and the email
// reset flow for everyone else.
type Handler struct {
	Users   *userstore.Store
	Resets  *passwordreset.Store
	Mailer  *mailer.Mailer
	BaseURL string
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, resets *passwordreset.Store, m *mailer.Mailer, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Users:   userstore.New(db),
		Resets:  resets,
		Mailer:  m,
		BaseURL: baseURL,
		Log:     logger,
	}
}
