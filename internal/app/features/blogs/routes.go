// internal/app/features/blogs/routes.go
package blogs

import (
	"github.com/go-chi/chi/v5"

	"github.com/nursehub/nursehub/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/view/{blogID}", h.ServeDetail)
	})

	return r
}
