// internal/app/features/admin/handler.go

// Package admin serves the moderation dashboard: pending users with
// direct approval, and pending resources and blogs with a
// preview-then-approve flow. The pending lists are refetched on every
// render, so the tab itself is the synchronization point between
// concurrent admins.
package admin

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	uierrors "github.com/nursehub/nursehub/internal/app/features/errors"
	"github.com/nursehub/nursehub/internal/app/gateway"
	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/app/system/gates"
	"github.com/nursehub/nursehub/internal/app/system/htmlsanitize"
	"github.com/nursehub/nursehub/internal/app/system/timeouts"
	"github.com/nursehub/nursehub/internal/app/system/viewdata"
	"github.com/nursehub/nursehub/internal/app/system/views"
	"github.com/nursehub/nursehub/internal/domain/models"
)

// Tab names the three pending queues.
type Tab string

const (
	TabUsers     Tab = "users"
	TabResources Tab = "resources"
	TabBlogs     Tab = "blogs"
)

func parseTab(s string) Tab {
	switch Tab(s) {
	case TabResources:
		return TabResources
	case TabBlogs:
		return TabBlogs
	default:
		return TabUsers
	}
}

// Gateway is the slice of the API client the dashboard needs.
type Gateway interface {
	PendingUsers(ctx context.Context, token string) ([]models.Identity, error)
	ApproveUser(ctx context.Context, token, userID string) (models.Identity, error)
	PendingResources(ctx context.Context, token string) ([]models.Resource, error)
	ApproveResource(ctx context.Context, token, resourceID string) (models.Resource, error)
	PendingBlogs(ctx context.Context, token string) ([]models.Blog, error)
	ApproveBlog(ctx context.Context, token, blogID string) (models.Blog, error)
}

type Handler struct {
	API    Gateway
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(api Gateway, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{API: api, ErrLog: errLog, Log: logger}
}

type pendingUserVM struct {
	ID    string
	Name  string
	Email string
}

type pendingItemVM struct {
	ID         string
	Title      string
	AuthorName string
	CreatedAt  string
	Kind       models.ContentKind
}

type dashboardData struct {
	viewdata.BaseVM
	ActiveTab Tab

	// Badge counts; a zero count omits the badge.
	UserCount     int
	ResourceCount int
	BlogCount     int

	PendingUsers []pendingUserVM
	PendingItems []pendingItemVM

	// Banner state after an approval attempt.
	Notice   string
	TabError string
	FailedID string
}

type previewData struct {
	viewdata.BaseVM
	Found bool
	Item  pendingItemVM

	// Resource fields.
	IsLink      bool
	URL         string
	Description string

	// Blog fields.
	CoverImageURL string
	Content       template.HTML
}

// ServeDashboard renders the moderation dashboard.
// GET /admin?tab=users|resources|blogs
//
// The route is mounted behind RequireSignedIn only; non-admins get the
// access-denied body here rather than a routing-level block.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	if !gates.RequireAdmin(w, r, "The admin panel is restricted to administrators.", "/feed").OK {
		return
	}

	data, err := h.loadDashboard(r, parseTab(r.URL.Query().Get("tab")))
	if err != nil {
		h.ErrLog.GatewayError(w, r, "load admin dashboard failed", err, "/admin")
		return
	}
	data.Notice = noticeFromQuery(r)
	templates.Render(w, r, "admin_dashboard", data)
}

func noticeFromQuery(r *http.Request) string {
	switch r.URL.Query().Get("notice") {
	case "approved":
		return "Approved."
	case "already":
		return "Already approved by another admin; the list below is current."
	}
	return ""
}

// loadDashboard fetches all three pending queues. Counts come from the
// same fetch, so the badges and the visible list can never disagree.
func (h *Handler) loadDashboard(r *http.Request, tab Tab) (dashboardData, error) {
	u, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.API.PendingUsers(ctx, u.Token)
	if err != nil {
		return dashboardData{}, err
	}
	resources, err := h.API.PendingResources(ctx, u.Token)
	if err != nil {
		return dashboardData{}, err
	}
	blogs, err := h.API.PendingBlogs(ctx, u.Token)
	if err != nil {
		return dashboardData{}, err
	}

	data := dashboardData{
		BaseVM:        viewdata.NewBaseVM(r, "Admin Panel", views.Admin),
		ActiveTab:     tab,
		UserCount:     len(users),
		ResourceCount: len(resources),
		BlogCount:     len(blogs),
	}

	switch tab {
	case TabUsers:
		for _, usr := range users {
			data.PendingUsers = append(data.PendingUsers, pendingUserVM{ID: usr.ID, Name: usr.Name, Email: usr.Email})
		}
	case TabResources:
		for _, res := range resources {
			data.PendingItems = append(data.PendingItems, pendingItemVM{
				ID: res.ID, Title: res.Title, AuthorName: res.Author.Name,
				CreatedAt: res.CreatedAt, Kind: models.KindResource,
			})
		}
	case TabBlogs:
		for _, b := range blogs {
			data.PendingItems = append(data.PendingItems, pendingItemVM{
				ID: b.ID, Title: b.Title, AuthorName: b.Author.Name,
				CreatedAt: b.CreatedAt, Kind: models.KindBlog,
			})
		}
	}
	return data, nil
}

// HandleApproveUser activates a pending account.
// POST /admin/users/{userID}/approve
func (h *Handler) HandleApproveUser(w http.ResponseWriter, r *http.Request) {
	h.approve(w, r, TabUsers, chi.URLParam(r, "userID"), func(ctx context.Context, token, id string) error {
		_, err := h.API.ApproveUser(ctx, token, id)
		return err
	})
}

// HandleApproveResource publishes a pending resource.
// POST /admin/resources/{resourceID}/approve
func (h *Handler) HandleApproveResource(w http.ResponseWriter, r *http.Request) {
	h.approve(w, r, TabResources, chi.URLParam(r, "resourceID"), func(ctx context.Context, token, id string) error {
		_, err := h.API.ApproveResource(ctx, token, id)
		return err
	})
}

// HandleApproveBlog publishes a pending blog.
// POST /admin/blogs/{blogID}/approve
func (h *Handler) HandleApproveBlog(w http.ResponseWriter, r *http.Request) {
	h.approve(w, r, TabBlogs, chi.URLParam(r, "blogID"), func(ctx context.Context, token, id string) error {
		_, err := h.API.ApproveBlog(ctx, token, id)
		return err
	})
}

// approve runs one approval and routes every outcome back to the list
// tab: success and the already-approved race both redirect (the refetch
// is authoritative), any other failure re-renders the tab with the
// failed row flagged.
func (h *Handler) approve(w http.ResponseWriter, r *http.Request, tab Tab, id string, call func(context.Context, string, string) error) {
	if !gates.RequireAdmin(w, r, "The admin panel is restricted to administrators.", "/feed").OK {
		return
	}
	u, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := call(ctx, u.Token, id)
	switch {
	case err == nil:
		h.Log.Info("approved", zap.String("tab", string(tab)), zap.String("id", id))
		http.Redirect(w, r, "/admin?tab="+string(tab)+"&notice=approved", http.StatusSeeOther)
	case errors.Is(err, gateway.ErrAlreadyApproved):
		http.Redirect(w, r, "/admin?tab="+string(tab)+"&notice=already", http.StatusSeeOther)
	case errors.Is(err, gateway.ErrAuthExpired):
		h.ErrLog.GatewayError(w, r, "approve failed", err, "/admin")
	default:
		h.Log.Warn("approve failed",
			zap.String("tab", string(tab)), zap.String("id", id), zap.Error(err))
		data, loadErr := h.loadDashboard(r, tab)
		if loadErr != nil {
			h.ErrLog.GatewayError(w, r, "reload admin dashboard failed", loadErr, "/admin")
			return
		}
		data.TabError = gateway.Message(err)
		data.FailedID = id
		templates.Render(w, r, "admin_dashboard", data)
	}
}

// ServePreviewResource renders the full resource for PHI review before
// approval.
// GET /admin/resources/{resourceID}/preview
func (h *Handler) ServePreviewResource(w http.ResponseWriter, r *http.Request) {
	if !gates.RequireAdmin(w, r, "The admin panel is restricted to administrators.", "/feed").OK {
		return
	}
	u, _ := auth.CurrentUser(r)
	resourceID := chi.URLParam(r, "resourceID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pending, err := h.API.PendingResources(ctx, u.Token)
	if err != nil {
		h.ErrLog.GatewayError(w, r, "load pending resource failed", err, "/admin")
		return
	}

	data := previewData{BaseVM: viewdata.NewBaseVM(r, "Review resource", views.Admin)}
	for _, res := range pending {
		if res.ID == resourceID {
			data.Found = true
			data.Item = pendingItemVM{
				ID: res.ID, Title: res.Title, AuthorName: res.Author.Name,
				CreatedAt: res.CreatedAt, Kind: models.KindResource,
			}
			data.IsLink = res.Type == models.ResourceLink
			data.Description = res.Description
			if data.IsLink {
				data.URL = res.Content
			} else {
				data.URL = res.FileURL
			}
			break
		}
	}

	templates.Render(w, r, "admin_preview", data)
}

// ServePreviewBlog renders the full sanitized article for PHI review
// before approval.
// GET /admin/blogs/{blogID}/preview
func (h *Handler) ServePreviewBlog(w http.ResponseWriter, r *http.Request) {
	if !gates.RequireAdmin(w, r, "The admin panel is restricted to administrators.", "/feed").OK {
		return
	}
	u, _ := auth.CurrentUser(r)
	blogID := chi.URLParam(r, "blogID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	pending, err := h.API.PendingBlogs(ctx, u.Token)
	if err != nil {
		h.ErrLog.GatewayError(w, r, "load pending blog failed", err, "/admin")
		return
	}

	data := previewData{BaseVM: viewdata.NewBaseVM(r, "Review blog", views.Admin)}
	for _, b := range pending {
		if b.ID == blogID {
			data.Found = true
			data.Item = pendingItemVM{
				ID: b.ID, Title: b.Title, AuthorName: b.Author.Name,
				CreatedAt: b.CreatedAt, Kind: models.KindBlog,
			}
			data.CoverImageURL = b.CoverImageURL
			data.Content = htmlsanitize.SanitizeToHTML(b.Content)
			break
		}
	}

	templates.Render(w, r, "admin_preview", data)
}
