// internal/app/system/auth/auth.go

// Package auth owns the browser session: the persisted access token and
// identity, the middleware that loads them into request context, and the
// single forced sign-out path every authorization failure funnels into.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/nursehub/nursehub/internal/domain/models"
)

const (
	SessionName = "nursehub-session"

	tokenKey    = "access_token"
	identityKey = "identity"
)

// SessionUser is what we cache in the session and inject into
// r.Context(): the bearer token plus the identity as the backend last
// reported it.
type SessionUser struct {
	Token    string
	Identity models.Identity
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the session user and a "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// SessionManager persists and restores sessions via a signed cookie.
// ExpireAndRedirect is the only code path that tears a session down in
// response to a backend authorization failure; call sites must not
// clear cookies themselves.
type SessionManager struct {
	store *sessions.CookieStore
	log   *zap.Logger
}

// NewSessionManager builds the cookie-backed session manager. The secure
// flag controls Secure + SameSite: None for HTTPS deployments, Lax for
// local dev over http://localhost.
func NewSessionManager(sessionKey, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, log: logger}, nil
}

// SignIn persists a freshly issued backend session.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, s models.Session) error {
	raw, err := json.Marshal(s.Identity)
	if err != nil {
		return fmt.Errorf("encoding identity: %w", err)
	}
	sess, _ := m.store.Get(r, SessionName)
	sess.Values[tokenKey] = s.AccessToken
	sess.Values[identityKey] = string(raw)
	return sess.Save(r, w)
}

// UpdateIdentity refreshes the cached identity (profile edits, role
// changes) without touching the token.
func (m *SessionManager) UpdateIdentity(w http.ResponseWriter, r *http.Request, id models.Identity) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encoding identity: %w", err)
	}
	sess, _ := m.store.Get(r, SessionName)
	sess.Values[identityKey] = string(raw)
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) {
	sess, _ := m.store.Get(r, SessionName)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		m.log.Warn("clearing session cookie", zap.Error(err))
	}
}

// ExpireAndRedirect is the forced sign-out: the persisted session is
// cleared and the browser is sent back to the unauthenticated landing
// page. Every handler that sees an authorization failure from the
// backend routes through here, never just the login path.
func (m *SessionManager) ExpireAndRedirect(w http.ResponseWriter, r *http.Request) {
	if u, ok := CurrentUser(r); ok {
		m.log.Info("session expired; forcing sign-out",
			zap.String("user_id", u.Identity.ID))
	}
	m.SignOut(w, r)
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LoadSessionUser injects the session user into context if they are
// signed in. A token whose exp claim has already passed is treated as no
// session at all, so the first request after expiry lands on the public
// pages instead of bouncing off the backend.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := m.store.Get(r, SessionName)

		token, _ := sess.Values[tokenKey].(string)
		raw, _ := sess.Values[identityKey].(string)
		if token == "" || raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		if tokenExpired(token) {
			m.SignOut(w, r)
			next.ServeHTTP(w, r)
			return
		}

		var id models.Identity
		if err := json.Unmarshal([]byte(raw), &id); err != nil {
			m.log.Warn("session identity undecodable; dropping session", zap.Error(err))
			m.SignOut(w, r)
			next.ServeHTTP(w, r)
			return
		}
		id.Role = models.ParseRole(string(id.Role))

		r = withUser(r, &SessionUser{Token: token, Identity: id})
		next.ServeHTTP(w, r)
	})
}

// tokenExpired checks the token's exp claim without verifying the
// signature; the backend is the verifier, this is only a local shortcut
// to avoid a guaranteed 401 round-trip. Tokens we cannot parse are left
// to the backend's judgment.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// RequireSignedIn ensures there is a user in context (set by
// LoadSessionUser). If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		redirectToLogin(w, r)
	})
}

// RequireRole ensures the session user holds one of the allowed roles.
// Unauthenticated requests get 401 semantics; wrong-role requests get a
// friendly /forbidden page rather than a blank error.
func RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	set := make(map[models.Role]struct{}, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				redirectToLogin(w, r)
				return
			}

			if _, has := set[u.Identity.Role]; !has {
				if r.Header.Get("HX-Request") == "true" {
					w.Header().Set("HX-Redirect", "/forbidden")
					w.WriteHeader(http.StatusForbidden)
					return
				}
				if wantsHTML(r) {
					http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
					return
				}
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithTestUser injects a session user into a request's context for
// handler tests, bypassing the cookie round-trip.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// helpers

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(currentURI(r))

	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login?return="+ret)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if wantsHTML(r) {
		http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
