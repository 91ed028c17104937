package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/domain/models"
)

const testSessionKey = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	m, err := auth.NewSessionManager(testSessionKey, "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return m
}

// signedToken mints an HMAC token with the given expiry. The session
// layer only reads the exp claim; the signature is never verified here.
func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return s
}

// roundTrip signs in, then replays the issued cookies through
// LoadSessionUser and returns whatever user lands in context.
func roundTrip(t *testing.T, m *auth.SessionManager, sess models.Session) (*auth.SessionUser, bool) {
	t.Helper()

	signinRec := httptest.NewRecorder()
	signinReq := httptest.NewRequest("POST", "/login", nil)
	if err := m.SignIn(signinRec, signinReq, sess); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	req := httptest.NewRequest("GET", "/feed", nil)
	for _, c := range signinRec.Result().Cookies() {
		req.AddCookie(c)
	}

	var got *auth.SessionUser
	var ok bool
	handler := m.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = auth.CurrentUser(r)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), req)
	return got, ok
}

func TestSessionRoundTrip(t *testing.T) {
	m := newTestManager(t)

	ident := models.Identity{
		ID:    "u1",
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Role:  models.RoleNurse,
		Title: "RN",
		State: "TX",
	}
	tok := signedToken(t, time.Now().Add(time.Hour))

	u, ok := roundTrip(t, m, models.Session{AccessToken: tok, Identity: ident})
	if !ok {
		t.Fatal("expected a session user after sign-in")
	}
	if u.Token != tok {
		t.Errorf("Token = %q, want the signed-in token", u.Token)
	}
	if u.Identity.Name != "Jane Doe" || u.Identity.Role != models.RoleNurse || u.Identity.State != "TX" {
		t.Errorf("Identity = %+v", u.Identity)
	}
}

func TestExpiredTokenDropsSession(t *testing.T) {
	m := newTestManager(t)

	tok := signedToken(t, time.Now().Add(-time.Hour))
	_, ok := roundTrip(t, m, models.Session{
		AccessToken: tok,
		Identity:    models.Identity{ID: "u1", Role: models.RoleNurse},
	})
	if ok {
		t.Fatal("expired token should not restore a session")
	}
}

func TestOpaqueTokenIsKept(t *testing.T) {
	m := newTestManager(t)

	// Tokens that aren't JWTs are left to the backend's judgment.
	u, ok := roundTrip(t, m, models.Session{
		AccessToken: "opaque-token",
		Identity:    models.Identity{ID: "u1", Role: models.RoleNurse},
	})
	if !ok || u.Token != "opaque-token" {
		t.Fatalf("opaque token should restore a session, got ok=%v", ok)
	}
}

func TestUnknownRoleFallsBackToPending(t *testing.T) {
	m := newTestManager(t)

	u, ok := roundTrip(t, m, models.Session{
		AccessToken: "opaque-token",
		Identity:    models.Identity{ID: "u1", Role: "SUPERUSER"},
	})
	if !ok {
		t.Fatal("expected a session user")
	}
	if u.Identity.Role != models.RolePending {
		t.Errorf("Role = %q, want PENDING fallback", u.Identity.Role)
	}
}

func TestRequireSignedInRedirects(t *testing.T) {
	req := httptest.NewRequest("GET", "/feed?tag=icu", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	auth.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?return=%2Ffeed%3Ftag%3Dicu" {
		t.Errorf("Location = %q", loc)
	}
}

func TestRequireSignedInHTMX(t *testing.T) {
	req := httptest.NewRequest("GET", "/feed", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	auth.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if rec.Header().Get("HX-Redirect") == "" {
		t.Error("expected HX-Redirect header")
	}
}

func TestRequireRole(t *testing.T) {
	mw := auth.RequireRole(models.RoleAdmin)

	cases := []struct {
		name string
		role models.Role
		want int
	}{
		{"admin allowed", models.RoleAdmin, http.StatusOK},
		{"nurse forbidden", models.RoleNurse, http.StatusSeeOther},
		{"pending forbidden", models.RolePending, http.StatusSeeOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			req.Header.Set("Accept", "text/html")
			req = auth.WithTestUser(req, &auth.SessionUser{
				Identity: models.Identity{ID: "u1", Role: tc.role},
			})
			rec := httptest.NewRecorder()

			mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})).ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestExpireAndRedirect(t *testing.T) {
	m := newTestManager(t)

	req := httptest.NewRequest("POST", "/feed/react", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		Identity: models.Identity{ID: "u1", Role: models.RoleNurse},
	})
	rec := httptest.NewRecorder()

	m.ExpireAndRedirect(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected the session cookie to be cleared")
	}
}
