// internal/app/features/feed/handler.go

// Package feed serves the community feed: the post list with its tag
// filter, post creation with the pre-post confirmation, reactions,
// comments, and the single-post view.
package feed

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	uierrors "github.com/nursehub/nursehub/internal/app/features/errors"
	"github.com/nursehub/nursehub/internal/app/policy/contentpolicy"
	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/app/system/timeouts"
	"github.com/nursehub/nursehub/internal/app/system/viewdata"
	"github.com/nursehub/nursehub/internal/app/system/views"
	"github.com/nursehub/nursehub/internal/domain/models"
)

type Handler struct {
	API    Gateway
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(api Gateway, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{API: api, ErrLog: errLog, Log: logger}
}

// ServeFeed renders the feed, optionally scoped to one tag.
// GET /feed[?tag=...]
func (h *Handler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	tag := r.URL.Query().Get("tag")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.API.Posts(ctx, u.Token, tag)
	if err != nil {
		h.ErrLog.GatewayError(w, r, "load feed failed", err, "/feed")
		return
	}

	data := h.feedData(r, u.Identity, posts, tag)
	templates.Render(w, r, "feed", data)
}

// ServeSinglePost renders one post with its full comment thread.
// GET /feed/posts/{postID}
//
// The backend has no single-post endpoint; the post is picked out of the
// feed fetch. An unknown id renders the empty state, not an error.
func (h *Handler) ServeSinglePost(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)
	postID := chi.URLParam(r, "postID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posts, err := h.API.Posts(ctx, u.Token, "")
	if err != nil {
		h.ErrLog.GatewayError(w, r, "load post failed", err, "/feed")
		return
	}

	data := singlePostData{
		BaseVM: viewdata.NewBaseVM(r, "Post", views.SinglePost),
	}
	for _, p := range posts {
		if p.ID == postID {
			data.Found = true
			data.Post = buildPostVM(p, u.Identity)
			data.Post.CSRFToken = data.CSRFToken
			break
		}
	}

	templates.Render(w, r, "single_post", data)
}

func (h *Handler) feedData(r *http.Request, viewer models.Identity, posts []models.Post, tag string) feedData {
	data := feedData{
		BaseVM:            viewdata.NewBaseVM(r, "Feed", views.Feed),
		ActiveTag:         tag,
		CanPost:           contentpolicy.CanAct(contentpolicy.ActionPost, viewer.Role),
		ShowPendingNotice: viewer.Role == models.RolePending,
		ShowAdminNotice:   viewer.Role == models.RoleAdmin,
		DisplayPrefs:      displayPrefOptions(viewer, models.DisplayFullName),
	}
	for _, p := range posts {
		vm := buildPostVM(p, viewer)
		vm.CSRFToken = data.CSRFToken
		data.Posts = append(data.Posts, vm)
	}
	return data
}
