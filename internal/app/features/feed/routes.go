// internal/app/features/feed/routes.go
package feed

import (
	"github.com/go-chi/chi/v5"

	"github.com/nursehub/nursehub/internal/app/system/auth"
)

// Routes mounts the feed under whatever base path the caller chooses
// (typically "/feed" from bootstrap). Everything here requires a
// signed-in session; finer role checks live in the handlers via
// contentpolicy.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.ServeFeed)
		pr.Post("/posts", h.HandleCreatePost)

		pr.Get("/posts/{postID}", h.ServeSinglePost)
		pr.Get("/posts/{postID}/edit", h.ServeEditPost)
		pr.Post("/posts/{postID}/edit", h.HandleEditPost)

		pr.Post("/posts/{postID}/reactions", h.HandleReact)
		pr.Post("/posts/{postID}/comments", h.HandleComment)
	})

	return r
}
