// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"

	uierrors "github.com/nursehub/nursehub/internal/app/features/errors"
	"github.com/nursehub/nursehub/internal/app/gateway"
	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/app/system/normalize"
	"github.com/nursehub/nursehub/internal/app/system/ratelimit"
	"github.com/nursehub/nursehub/internal/app/system/timeouts"
	"github.com/nursehub/nursehub/internal/app/system/viewdata"
	"github.com/nursehub/nursehub/internal/app/system/views"
	"github.com/nursehub/nursehub/internal/domain/models"
)

// Authenticator is the slice of the API gateway the login form needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
}

type Handler struct {
	API        Authenticator
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Limiter    *ratelimit.LoginLimiter
}

func NewHandler(api Authenticator, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		API:        api,
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Limiter:    ratelimit.NewLoginLimiter(),
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	ReturnURL string
}

// ServeLogin renders the sign-in form.
// GET /login
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, views.Path(views.Feed), http.StatusSeeOther)
		return
	}

	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", views.Login),
		ReturnURL: r.URL.Query().Get("return"),
	}
	templates.Render(w, r, "login", data)
}

// HandleLoginPost exchanges the credentials for a backend session and
// persists it.
// POST /login
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse login form failed", err, "Invalid form data.", "/login")
		return
	}

	email := normalize.Email(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	returnURL := r.PostFormValue("return")

	if email == "" || password == "" {
		h.renderError(w, r, "Email and password are required.", email, returnURL)
		return
	}

	if ok, reason := h.Limiter.Check(r, email); !ok {
		h.Log.Warn("login rate limited",
			zap.String("email", email), zap.String("ip", ratelimit.ClientIP(r)))
		h.renderError(w, r, reason, email, returnURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sess, err := h.API.Login(ctx, email, password)
	if err != nil {
		h.Log.Info("login rejected", zap.String("email", email), zap.Error(err))
		// A 401 here means the credentials were wrong, not that a
		// session expired — there is no session yet.
		msg := gateway.Message(err)
		if errors.Is(err, gateway.ErrAuthExpired) {
			msg = "Invalid email or password."
		}
		h.renderError(w, r, msg, email, returnURL)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, sess); err != nil {
		h.ErrLog.LogServerError(w, r, "persist session failed", err, "Could not sign you in. Please try again.", "/login")
		return
	}
	h.Limiter.ResetEmail(email)

	h.Log.Info("user signed in",
		zap.String("user_id", sess.Identity.ID),
		zap.String("role", string(sess.Identity.Role)))

	dest := safeReturnURL(returnURL)
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, msg, email, returnURL string) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	data := loginFormData{
		BaseVM:    viewdata.NewBaseVM(r, "Sign in", views.Login),
		Error:     msg,
		Email:     email,
		ReturnURL: returnURL,
	}
	templates.Render(w, r, "login", data)
}

// safeReturnURL only honors same-site relative paths; anything else goes
// to the feed.
func safeReturnURL(ret string) string {
	if strings.HasPrefix(ret, "/") && !strings.HasPrefix(ret, "//") {
		return ret
	}
	return views.Path(views.Feed)
}
