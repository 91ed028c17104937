// internal/app/features/invitations/handler.go

// Package invitations lets approved members invite colleagues by email
// and review the invitations they have sent.
package invitations

import (
	"context"
	"net/http"
	"net/mail"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	uierrors "github.com/nursehub/nursehub/internal/app/features/errors"
	"github.com/nursehub/nursehub/internal/app/policy/contentpolicy"
	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/app/system/normalize"
	"github.com/nursehub/nursehub/internal/app/system/timeouts"
	"github.com/nursehub/nursehub/internal/app/system/viewdata"
	"github.com/nursehub/nursehub/internal/app/system/views"
	"github.com/nursehub/nursehub/internal/domain/models"
)

// Gateway is the slice of the API client the invitation pages need.
type Gateway interface {
	SendInvitation(ctx context.Context, token, email string) (models.Invitation, error)
	SentInvitations(ctx context.Context, token string) ([]models.Invitation, error)
}

type Handler struct {
	API    Gateway
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(api Gateway, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{API: api, ErrLog: errLog, Log: logger}
}

type inviteVM struct {
	Email      string
	IsAccepted bool
	CreatedAt  string
}

type pageData struct {
	viewdata.BaseVM
	Invitations []inviteVM
	CanInvite   bool

	FormError  string
	SentOK     bool
	DraftEmail string
}

// ServePage renders the sent-invitation list with the invite form.
// GET /invitations
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sent, err := h.API.SentInvitations(ctx, u.Token)
	if err != nil {
		h.ErrLog.GatewayError(w, r, "load invitations failed", err, "/invitations")
		return
	}

	data := h.pageData(r, u.Identity, sent)
	data.SentOK = r.URL.Query().Get("sent") == "1"
	templates.Render(w, r, "invitations", data)
}

// HandleSend issues an invitation to a colleague's email.
// POST /invitations
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.CurrentUser(r)

	if !contentpolicy.CanAct(contentpolicy.ActionInvite, u.Identity.Role) {
		uierrors.RenderForbidden(w, r, "Your account does not allow sending invitations.", "/invitations")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse invite form failed", err, "Invalid form data.", "/invitations")
		return
	}

	email := normalize.Email(r.PostFormValue("email"))
	if _, err := mail.ParseAddress(email); err != nil {
		h.renderWithError(w, r, u, "Enter a valid email address.", email)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	inv, err := h.API.SendInvitation(ctx, u.Token, email)
	if err != nil {
		h.ErrLog.GatewayError(w, r, "send invitation failed", err, "/invitations")
		return
	}

	h.Log.Info("invitation sent", zap.String("invitation_id", inv.ID))
	http.Redirect(w, r, views.Path(views.Invitations)+"?sent=1", http.StatusSeeOther)
}

func (h *Handler) pageData(r *http.Request, viewer models.Identity, sent []models.Invitation) pageData {
	data := pageData{
		BaseVM:    viewdata.NewBaseVM(r, "My Invitations", views.Invitations),
		CanInvite: contentpolicy.CanAct(contentpolicy.ActionInvite, viewer.Role),
	}
	for _, inv := range sent {
		data.Invitations = append(data.Invitations, inviteVM{
			Email:      inv.InviteeEmail,
			IsAccepted: inv.Status == models.InviteAccepted,
			CreatedAt:  inv.CreatedAt,
		})
	}
	return data
}

func (h *Handler) renderWithError(w http.ResponseWriter, r *http.Request, u *auth.SessionUser, msg, draftEmail string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sent, err := h.API.SentInvitations(ctx, u.Token)
	if err != nil {
		h.ErrLog.GatewayError(w, r, "reload invitations failed", err, "/invitations")
		return
	}

	w.WriteHeader(http.StatusUnprocessableEntity)
	data := h.pageData(r, u.Identity, sent)
	data.FormError = msg
	data.DraftEmail = draftEmail
	templates.Render(w, r, "invitations", data)
}
