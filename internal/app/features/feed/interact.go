// internal/app/features/feed/interact.go
package feed

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"

	uierrors "github.com/nursehub/nursehub/internal/app/features/errors"
	"github.com/nursehub/nursehub/internal/app/policy/contentpolicy"
	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/app/system/timeouts"
	"github.com/nursehub/nursehub/internal/domain/models"
)

// HandleReact toggles a reaction on a post.
// POST /feed/posts/{postID}/reactions
//
// HTMX requests get the refreshed post card back as a partial; plain
// form posts are redirected to where they came from. Either way the
// rendered state is the backend's verdict, not an optimistic guess.
func (h *Handler) HandleReact(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	postID := chi.URLParam(r, "postID")

	if !contentpolicy.CanAct(contentpolicy.ActionReact, u.Identity.Role) {
		uierrorsForbidden(w, r, h)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse reaction form failed", err, "Invalid form data.", "/feed")
		return
	}

	reaction := models.ReactionType(r.PostFormValue("type"))
	if reaction != models.ReactionHeart && reaction != models.ReactionSupport {
		h.ErrLog.LogBadRequest(w, r, "unknown reaction type", nil, "Unknown reaction.", "/feed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.API.ToggleReaction(ctx, u.Token, postID, reaction); err != nil {
		h.ErrLog.GatewayError(w, r, "toggle reaction failed", err, "/feed")
		return
	}

	h.respondWithPost(w, r, u, postID)
}

// HandleComment appends a comment to a post.
// POST /feed/posts/{postID}/comments
func (h *Handler) HandleComment(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	postID := chi.URLParam(r, "postID")

	if !contentpolicy.CanAct(contentpolicy.ActionComment, u.Identity.Role) {
		uierrorsForbidden(w, r, h)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse comment form failed", err, "Invalid form data.", "/feed")
		return
	}

	text := strings.TrimSpace(r.PostFormValue("text"))
	if text == "" {
		h.ErrLog.LogBadRequest(w, r, "empty comment", nil, "Comment text is required.", "/feed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.API.AddComment(ctx, u.Token, postID, text); err != nil {
		h.ErrLog.GatewayError(w, r, "add comment failed", err, "/feed")
		return
	}

	h.respondWithPost(w, r, u, postID)
}

// respondWithPost re-fetches the post and returns it as an HTMX partial,
// or redirects back for plain form submissions.
func (h *Handler) respondWithPost(w http.ResponseWriter, r *http.Request, u *auth.SessionUser, postID string) {
	if r.Header.Get("HX-Request") != "true" {
		dest := r.Header.Get("Referer")
		if dest == "" {
			dest = "/feed"
		}
		http.Redirect(w, r, dest, http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.API.Posts(ctx, u.Token, "")
	if err != nil {
		h.ErrLog.GatewayError(w, r, "reload post failed", err, "/feed")
		return
	}
	for _, p := range posts {
		if p.ID == postID {
			vm := buildPostVM(p, u.Identity)
			vm.CSRFToken = csrf.Token(r)
			templates.RenderSnippet(w, "post_card", vm)
			return
		}
	}
	// Post vanished between the write and the refetch; send the client
	// back to the list.
	w.Header().Set("HX-Redirect", "/feed")
	w.WriteHeader(http.StatusOK)
}

func uierrorsForbidden(w http.ResponseWriter, r *http.Request, h *Handler) {
	uierrors.RenderForbidden(w, r, "Your account does not allow this action.", "/feed")
}
