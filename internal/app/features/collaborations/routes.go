// internal/app/features/collaborations/routes.go
package collaborations

import (
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Mount registers the collaboration endpoints on the root router.
func Mount(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/express_interest/{projectID}/", h.HandleExpressInterest)
		pr.Post("/accept_collaboration/{collabID}/", h.HandleAccept)
		pr.Post("/decline_collaboration/{collabID}/", h.HandleDecline)
	})
}
