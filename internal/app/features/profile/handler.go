// internal/app/features/profile/handler.go

// Package profile serves the member's own profile: the identity card
// with its role badge and completion meter, and the edit form. Saving
// writes through the gateway and then refreshes the session cookie so
// the header and later pages see the new identity immediately.
package profile

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	uierrors "github.com/nursehub/nursehub/internal/app/features/errors"
	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/app/system/timeouts"
	"github.com/nursehub/nursehub/internal/app/system/viewdata"
	"github.com/nursehub/nursehub/internal/app/system/views"
	"github.com/nursehub/nursehub/internal/domain/models"
)

// Gateway is the slice of the API client the profile pages need.
type Gateway interface {
	UpdateProfile(ctx context.Context, token string, patch models.ProfilePatch) (models.Identity, error)
}

type Handler struct {
	API        Gateway
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
}

func NewHandler(api Gateway, sm *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{API: api, SessionMgr: sm, ErrLog: errLog, Log: logger}
}

type pageData struct {
	viewdata.BaseVM
	Identity   models.Identity
	Completion int
	RoleBadge  string

	FormError string
	SavedOK   bool
}

// ServeProfile renders the identity card and edit form.
// GET /profile
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	data := h.pageData(r, u.Identity)
	data.SavedOK = r.URL.Query().Get("saved") == "1"
	templates.Render(w, r, "profile", data)
}

// HandleUpdate saves profile edits.
// POST /profile
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse profile form failed", err, "Invalid form data.", "/profile")
		return
	}

	patch := models.ProfilePatch{
		Name:       strings.TrimSpace(r.PostFormValue("name")),
		Title:      strings.TrimSpace(r.PostFormValue("title")),
		Department: strings.TrimSpace(r.PostFormValue("department")),
		State:      strings.TrimSpace(r.PostFormValue("state")),
		Bio:        strings.TrimSpace(r.PostFormValue("bio")),
	}
	if patch.Name == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		data := h.pageData(r, u.Identity)
		data.FormError = "Name is required."
		templates.Render(w, r, "profile", data)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.API.UpdateProfile(ctx, u.Token, patch)
	if err != nil {
		h.ErrLog.GatewayError(w, r, "update profile failed", err, "/profile")
		return
	}

	// Refresh the cookie so the header shows the new name on the very
	// next request.
	if err := h.SessionMgr.UpdateIdentity(w, r, updated); err != nil {
		h.ErrLog.LogServerError(w, r, "refresh session identity failed", err, "Your profile was saved but the session could not be refreshed.", "/profile")
		return
	}

	h.Log.Info("profile updated", zap.String("user_id", updated.ID))
	http.Redirect(w, r, views.Path(views.Profile)+"?saved=1", http.StatusSeeOther)
}

func (h *Handler) pageData(r *http.Request, id models.Identity) pageData {
	return pageData{
		BaseVM:     viewdata.NewBaseVM(r, "Profile", views.Profile),
		Identity:   id,
		Completion: id.ProfileCompletionPercentage,
		RoleBadge:  roleBadge(id.Role),
	}
}

func roleBadge(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "Administrator"
	case models.RoleNurse:
		return "Verified Nurse"
	default:
		return "Pending Approval"
	}
}
