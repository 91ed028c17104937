// internal/app/features/admin/routes.go
package admin

import (
	"github.com/go-chi/chi/v5"

	"github.com/nursehub/nursehub/internal/app/system/auth"
)

// Routes mounts the moderation dashboard. Only a signed-in session is
// required at the routing layer; the admin-role check happens in the
// handlers so non-admins get a rendered access-denied body, not a bare
// routing 404.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.ServeDashboard)

		pr.Post("/users/{userID}/approve", h.HandleApproveUser)

		pr.Get("/resources/{resourceID}/preview", h.ServePreviewResource)
		pr.Post("/resources/{resourceID}/approve", h.HandleApproveResource)

		pr.Get("/blogs/{blogID}/preview", h.ServePreviewBlog)
		pr.Post("/blogs/{blogID}/approve", h.HandleApproveBlog)
	})

	return r
}
