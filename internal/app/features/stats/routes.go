// internal/app/features/stats/routes.go
package stats

import (
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Mount registers the statistics endpoint on the root router.
func Mount(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/user_statistics/", h.HandleUserStatistics)
	})
}
