// internal/app/features/projects/routes.go
package projects

import (
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Mount registers the project endpoints on the root router. The paths
// are flat by design; all of them require a signed-in caller.
func Mount(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/create_project/", h.HandleCreate)
		pr.Delete("/delete_project/{projectID}/", h.HandleDelete)
		pr.Get("/open_projects/", h.HandleListOpen)
	})
}
