// internal/app/features/password/routes.go
package password

import (
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// ChangeRoutes guards /change_password/ behind authentication.
func ChangeRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/", h.HandleChange)
	})
	return r
}

// ResetRoutes is the unauthenticated email reset flow.
func ResetRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleResetRequest)
	r.Post("/confirm/", h.HandleResetConfirm)
	return r
}
