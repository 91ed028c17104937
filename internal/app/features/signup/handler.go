// internal/app/features/signup/handler.go

// Package signup registers new accounts, including invited signups where
// an invitation token pre-validates and locks the email address.
package signup

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	uierrors "github.com/nursehub/nursehub/internal/app/features/errors"
	"github.com/nursehub/nursehub/internal/app/gateway"
	"github.com/nursehub/nursehub/internal/app/system/normalize"
	"github.com/nursehub/nursehub/internal/app/system/timeouts"
	"github.com/nursehub/nursehub/internal/app/system/viewdata"
	"github.com/nursehub/nursehub/internal/app/system/views"
	"github.com/nursehub/nursehub/internal/domain/models"
)

// Registrar is the slice of the API gateway signup needs.
type Registrar interface {
	Signup(ctx context.Context, name, email, password, invitationToken string) error
	ValidateInvitation(ctx context.Context, invitationToken string) (models.InvitationClaim, error)
}

// Handler serves the signup form. Validated invitation tokens are cached
// so the GET that renders the locked form and the POST that submits it
// don't each cost a backend round-trip.
type Handler struct {
	API    Registrar
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger

	tokens *gocache.Cache
}

func NewHandler(api Registrar, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		API:    api,
		Log:    logger,
		ErrLog: errLog,
		tokens: gocache.New(15*time.Minute, 30*time.Minute),
	}
}

type signupFormData struct {
	viewdata.BaseVM
	Error       string
	Success     string
	Name        string
	Email       string
	EmailLocked bool
	Token       string
}

// ServeSignup renders the registration form.
// GET /signup[?token=...]
//
// With a valid invitation token the email field is locked to the address
// the invitation was issued for. An invalid token falls back to the open
// form with a notice; the visitor can still register as PENDING.
func (h *Handler) ServeSignup(w http.ResponseWriter, r *http.Request) {
	data := signupFormData{
		BaseVM: viewdata.NewBaseVM(r, "Create account", views.Signup),
	}

	if token := r.URL.Query().Get("token"); token != "" {
		email, err := h.invitedEmail(r.Context(), token)
		if err != nil {
			h.Log.Info("invitation token rejected", zap.Error(err))
			data.Error = "That invitation link is invalid or has expired. You can still sign up below."
		} else {
			data.Email = email
			data.EmailLocked = true
			data.Token = token
		}
	}

	templates.Render(w, r, "signup", data)
}

// HandleSignupPost registers the account.
// POST /signup
func (h *Handler) HandleSignupPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse signup form failed", err, "Invalid form data.", "/signup")
		return
	}

	name := normalize.Name(r.PostFormValue("name"))
	email := normalize.Email(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	token := r.PostFormValue("token")

	data := signupFormData{
		BaseVM: viewdata.NewBaseVM(r, "Create account", views.Signup),
		Name:   name,
		Email:  email,
		Token:  token,
	}

	if name == "" || email == "" || password == "" {
		data.Error = "Name, email, and password are required."
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "signup", data)
		return
	}

	// An invited signup must use the email the token was issued for.
	if token != "" {
		invited, err := h.invitedEmail(r.Context(), token)
		if err != nil {
			data.Error = "That invitation link is invalid or has expired."
			w.WriteHeader(http.StatusUnprocessableEntity)
			templates.Render(w, r, "signup", data)
			return
		}
		email = invited
		data.Email = invited
		data.EmailLocked = true
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.API.Signup(ctx, name, email, password, token); err != nil {
		h.Log.Info("signup rejected", zap.String("email", email), zap.Error(err))
		data.Error = gateway.Message(err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "signup", data)
		return
	}

	h.Log.Info("account registered", zap.String("email", email), zap.Bool("invited", token != ""))

	data.Name, data.Email = "", ""
	if token != "" {
		data.Success = "Registration successful! Your invitation has been accepted — you can sign in right away."
	} else {
		data.Success = "Registration successful! Please wait for an admin to approve your account."
	}
	templates.Render(w, r, "signup", data)
}

// invitedEmail resolves a token to its invited email, consulting the
// cache before the backend.
func (h *Handler) invitedEmail(ctx context.Context, token string) (string, error) {
	if email, found := h.tokens.Get(token); found {
		return email.(string), nil
	}

	vctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	claim, err := h.API.ValidateInvitation(vctx, token)
	if err != nil {
		return "", err
	}
	h.tokens.Set(token, claim.Email, gocache.DefaultExpiration)
	return claim.Email, nil
}
