// internal/app/features/skills/routes.go
package skills

import (
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Mount registers the skill endpoints on the root router.
func Mount(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/add_skill/", h.HandleAdd)
		pr.Delete("/remove_skill/{skillID}/", h.HandleRemove)
	})
}
