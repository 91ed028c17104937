package gates_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	_ "github.com/nursehub/nursehub/internal/app/features/assistant"
	_ "github.com/nursehub/nursehub/internal/app/features/shared/views"
	"github.com/nursehub/nursehub/internal/app/system/gates"
	"github.com/nursehub/nursehub/internal/domain/models"
	"github.com/nursehub/nursehub/internal/testutil"
)

func TestRequireAuth(t *testing.T) {
	testutil.BootTemplates(t)

	t.Run("signed in", func(t *testing.T) {
		req := testutil.NewAuthenticatedRequest("GET", "/feed", testutil.NurseUser())
		rec := httptest.NewRecorder()

		res := gates.RequireAuth(rec, req, "/login")
		if !res.OK {
			t.Fatal("RequireAuth should pass for a signed-in user")
		}
		if res.Role != models.RoleNurse {
			t.Errorf("role = %q, want NURSE", res.Role)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/feed", nil)
		rec := httptest.NewRecorder()

		res := gates.RequireAuth(rec, req, "/login")
		if res.OK {
			t.Fatal("RequireAuth should fail without a session")
		}
		if !strings.Contains(rec.Body.String(), "sign in") {
			t.Error("anonymous user should see the sign-in prompt")
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	testutil.BootTemplates(t)

	t.Run("admin passes", func(t *testing.T) {
		req := testutil.NewAuthenticatedRequest("GET", "/admin", testutil.AdminUser())
		rec := httptest.NewRecorder()

		if res := gates.RequireAdmin(rec, req, "admins only", "/feed"); !res.OK {
			t.Error("admin should pass RequireAdmin")
		}
	})

	t.Run("nurse forbidden", func(t *testing.T) {
		req := testutil.NewAuthenticatedRequest("GET", "/admin", testutil.NurseUser())
		rec := httptest.NewRecorder()

		if res := gates.RequireAdmin(rec, req, "admins only", "/feed"); res.OK {
			t.Error("nurse should fail RequireAdmin")
		}
		if !strings.Contains(rec.Body.String(), "admins only") {
			t.Error("forbidden page should carry the provided message")
		}
	})
}

func TestRequireApproved(t *testing.T) {
	testutil.BootTemplates(t)

	t.Run("nurse passes", func(t *testing.T) {
		req := testutil.NewAuthenticatedRequest("GET", "/feed", testutil.NurseUser())
		rec := httptest.NewRecorder()

		if res := gates.RequireApproved(rec, req, "approved members only", "/feed"); !res.OK {
			t.Error("nurse should pass RequireApproved")
		}
	})

	t.Run("pending forbidden", func(t *testing.T) {
		req := testutil.NewAuthenticatedRequest("GET", "/feed", testutil.PendingUser())
		rec := httptest.NewRecorder()

		if res := gates.RequireApproved(rec, req, "approved members only", "/feed"); res.OK {
			t.Error("pending account should fail RequireApproved")
		}
	})
}

func TestRequireAnyRole(t *testing.T) {
	testutil.BootTemplates(t)

	req := testutil.NewAuthenticatedRequest("GET", "/x", testutil.NurseUser())
	rec := httptest.NewRecorder()
	if res := gates.RequireAnyRole(rec, req, "no", "/feed", models.RoleAdmin, models.RoleNurse); !res.OK {
		t.Error("nurse should satisfy {ADMIN, NURSE}")
	}

	req = testutil.NewAuthenticatedRequest("GET", "/x", testutil.PendingUser())
	rec = httptest.NewRecorder()
	if res := gates.RequireAnyRole(rec, req, "no", "/feed", models.RoleAdmin, models.RoleNurse); res.OK {
		t.Error("pending should not satisfy {ADMIN, NURSE}")
	}
}
