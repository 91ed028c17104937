// internal/app/features/invitations/routes.go
package invitations

import (
	"github.com/go-chi/chi/v5"

	"github.com/nursehub/nursehub/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/", h.ServePage)
		pr.Post("/", h.HandleSend)
	})

	return r
}
