package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/domain/models"
)

// TestContext returns a context with a test-appropriate deadline.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AdminUser returns a session user with the ADMIN role.
func AdminUser() *auth.SessionUser {
	return &auth.SessionUser{
		Token: "test-token",
		Identity: models.Identity{
			ID:    uuid.NewString(),
			Name:  "Test Admin",
			Email: "admin@test.com",
			Role:  models.RoleAdmin,
		},
	}
}

// NurseUser returns a session user with the NURSE role.
func NurseUser() *auth.SessionUser {
	return &auth.SessionUser{
		Token: "test-token",
		Identity: models.Identity{
			ID:    uuid.NewString(),
			Name:  "Test Nurse",
			Email: "nurse@test.com",
			Role:  models.RoleNurse,
			Title: "RN",
			State: "TX",
		},
	}
}

// PendingUser returns a session user awaiting account approval.
func PendingUser() *auth.SessionUser {
	return &auth.SessionUser{
		Token: "test-token",
		Identity: models.Identity{
			ID:    uuid.NewString(),
			Name:  "Test Pending",
			Email: "pending@test.com",
			Role:  models.RolePending,
		},
	}
}

// NewAuthenticatedRequest creates an HTTP request with a user in
// context, bypassing the session middleware.
func NewAuthenticatedRequest(method, target string, user *auth.SessionUser) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return auth.WithTestUser(req, user)
}

var bootOnce sync.Once

// BootTemplates parses every registered template set once per test
// binary. Call it from any test that renders a page.
func BootTemplates(t interface{ Fatalf(string, ...any) }) {
	bootOnce.Do(func() {
		eng := templates.New(false)
		logger := zap.NewNop()
		if err := eng.Boot(logger); err != nil {
			t.Fatalf("booting template engine: %v", err)
		}
		templates.UseEngine(eng, logger)
	})
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertRedirect checks for a redirect to the expected location.
func (r *ResponseRecorder) AssertRedirect(t interface{ Errorf(string, ...any) }, expectedLocation string) {
	if r.Code != http.StatusSeeOther && r.Code != http.StatusFound && r.Code != http.StatusMovedPermanently {
		t.Errorf("expected redirect status, got %d", r.Code)
	}
	location := r.Header().Get("Location")
	if location != expectedLocation {
		t.Errorf("redirect location: got %q, want %q", location, expectedLocation)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	body := r.Body.String()
	if !contains(body, expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (s == substr || len(substr) == 0 || findSubstring(s, substr))
}

func findSubstring(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
