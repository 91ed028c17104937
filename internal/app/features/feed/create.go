// internal/app/features/feed/create.go
package feed

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nursehub/nursehub/internal/app/gateway"
	"github.com/nursehub/nursehub/internal/app/policy/contentpolicy"
	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/app/system/timeouts"
	"github.com/nursehub/nursehub/internal/app/system/viewdata"
	"github.com/nursehub/nursehub/internal/app/system/views"
	"github.com/nursehub/nursehub/internal/domain/models"
)

const maxUploadBytes = 32 << 20

// HandleCreatePost publishes a new post after the confirmation step.
// POST /feed/posts
//
// The form carries the draft plus the confirmation inputs: a display-name
// preference and the PHI checkbox. Both are validated here before any
// network call. A successful publish redirects to the unfiltered feed so
// the new post is visible even if a tag filter was active.
func (h *Handler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	if !contentpolicy.CanAct(contentpolicy.ActionPost, u.Identity.Role) {
		uierrorsForbidden(w, r, h)
		return
	}

	// A text-only post arrives urlencoded; ErrNotMultipart still leaves
	// the form fields parsed.
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.ErrLog.LogBadRequest(w, r, "parse post form failed", err, "Invalid form data.", "/feed")
		return
	}

	text := strings.TrimSpace(r.PostFormValue("text"))
	tagsRaw := r.PostFormValue("tags")
	prefRaw := r.PostFormValue("displayNamePreference")
	phiOK := r.PostFormValue("phi_confirmed") != ""

	var media *gateway.Upload
	if file, header, err := r.FormFile("media"); err == nil {
		defer file.Close()
		media = &gateway.Upload{Filename: header.Filename, Reader: file}
	}

	if msg := validateDraft(text, media != nil, phiOK); msg != "" {
		h.renderFeedWithError(w, r, u, msg, text, tagsRaw, prefRaw)
		return
	}

	draft := gateway.PostDraft{
		Text:                  text,
		Tags:                  models.ParseTags(tagsRaw),
		DisplayNamePreference: models.ParseDisplayNamePreference(prefRaw),
		Media:                 media,
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "create post")
	defer cancel()

	post, err := h.API.CreatePost(ctx, u.Token, draft)
	if err != nil {
		h.ErrLog.GatewayError(w, r, "create post failed", err, "/feed")
		return
	}

	h.Log.Info("post published",
		zap.String("post_id", post.ID),
		zap.String("display_pref", string(draft.DisplayNamePreference)))

	http.Redirect(w, r, views.Path(views.Feed), http.StatusSeeOther)
}

// ServeEditPost renders the edit form for a post the viewer authored.
// GET /feed/posts/{postID}/edit
//
// Saving requires a fresh PHI confirmation regardless of what changed;
// the creation-time consent does not carry over.
func (h *Handler) ServeEditPost(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	postID := chi.URLParam(r, "postID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.API.Posts(ctx, u.Token, "")
	if err != nil {
		h.ErrLog.GatewayError(w, r, "load post for edit failed", err, "/feed")
		return
	}

	for _, p := range posts {
		if p.ID != postID {
			continue
		}
		if !contentpolicy.CanEditPost(u.Identity, p) {
			uierrorsForbidden(w, r, h)
			return
		}
		data := editPostData{
			BaseVM:    viewdata.NewBaseVM(r, "Edit post", views.SinglePost),
			PostID:    p.ID,
			DraftText: p.Text,
			DraftTags: models.JoinTags(p.Tags),
		}
		templates.Render(w, r, "post_edit", data)
		return
	}

	templates.Render(w, r, "single_post", singlePostData{
		BaseVM: viewdata.NewBaseVM(r, "Post", views.SinglePost),
	})
}

// HandleEditPost saves edited text and tags.
// POST /feed/posts/{postID}/edit
func (h *Handler) HandleEditPost(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	postID := chi.URLParam(r, "postID")

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse edit form failed", err, "Invalid form data.", "/feed")
		return
	}

	text := strings.TrimSpace(r.PostFormValue("text"))
	tagsRaw := r.PostFormValue("tags")
	phiOK := r.PostFormValue("phi_confirmed") != ""

	if msg := validateEdit(text, phiOK); msg != "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		data := editPostData{
			BaseVM:    viewdata.NewBaseVM(r, "Edit post", views.SinglePost),
			PostID:    postID,
			DraftText: text,
			DraftTags: tagsRaw,
			FormError: msg,
		}
		templates.Render(w, r, "post_edit", data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, err := h.API.UpdatePost(ctx, u.Token, postID, text, models.ParseTags(tagsRaw))
	if err != nil {
		h.ErrLog.GatewayError(w, r, "update post failed", err, "/feed")
		return
	}

	h.Log.Info("post updated", zap.String("post_id", post.ID))
	http.Redirect(w, r, views.PathWithEntity(views.SinglePost, postID), http.StatusSeeOther)
}

// validateDraft returns a user-facing message for an invalid new post,
// or "" when the draft may be sent. A post needs text or media, not
// necessarily both.
func validateDraft(text string, hasMedia, phiConfirmed bool) string {
	if text == "" && !hasMedia {
		return "A post needs text or an attached file."
	}
	if !phiConfirmed {
		return "You must confirm the post contains no identifiable patient information."
	}
	return ""
}

// validateEdit returns a user-facing message for an invalid edit, or ""
// when the save may proceed. Edits carry text and tags only, so text is
// required here.
func validateEdit(text string, phiConfirmed bool) string {
	if text == "" {
		return "Post text is required."
	}
	if !phiConfirmed {
		return "You must confirm the post contains no identifiable patient information."
	}
	return ""
}

func (h *Handler) renderFeedWithError(w http.ResponseWriter, r *http.Request, u *auth.SessionUser, msg, text, tagsRaw, prefRaw string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.API.Posts(ctx, u.Token, "")
	if err != nil {
		h.ErrLog.GatewayError(w, r, "reload feed failed", err, "/feed")
		return
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	data := h.feedData(r, u.Identity, posts, "")
	data.FormError = msg
	data.DraftText = text
	data.DraftTags = tagsRaw
	data.DisplayPrefs = displayPrefOptions(u.Identity, models.ParseDisplayNamePreference(prefRaw))
	templates.Render(w, r, "feed", data)
}
