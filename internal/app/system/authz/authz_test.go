package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/nursehub/nursehub/internal/app/system/auth"
	"github.com/nursehub/nursehub/internal/app/system/authz"
	"github.com/nursehub/nursehub/internal/domain/models"
)

func TestUserCtx_NoUser(t *testing.T) {
	r := httptest.NewRequest("GET", "/feed", nil)

	role, name, id, ok := authz.UserCtx(r)
	if ok {
		t.Fatal("expected ok=false with no session user")
	}
	if role != models.RolePending || name != "" || id != "" {
		t.Errorf("got role=%q name=%q id=%q, want fail-closed zero values", role, name, id)
	}
}

func TestUserCtx_WithUser(t *testing.T) {
	r := httptest.NewRequest("GET", "/feed", nil)
	r = auth.WithTestUser(r, &auth.SessionUser{
		Token: "tok",
		Identity: models.Identity{
			ID:   "u1",
			Name: "Jane Doe",
			Role: models.RoleNurse,
		},
	})

	role, name, id, ok := authz.UserCtx(r)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != models.RoleNurse || name != "Jane Doe" || id != "u1" {
		t.Errorf("got role=%q name=%q id=%q", role, name, id)
	}
}

func TestRoleHelpers(t *testing.T) {
	cases := []struct {
		role      models.Role
		isAdmin   bool
		isPending bool
	}{
		{models.RoleAdmin, true, false},
		{models.RoleNurse, false, false},
		{models.RolePending, false, true},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/", nil)
		r = auth.WithTestUser(r, &auth.SessionUser{
			Identity: models.Identity{ID: "u1", Role: tc.role},
		})
		if got := authz.IsAdmin(r); got != tc.isAdmin {
			t.Errorf("IsAdmin(%s) = %v", tc.role, got)
		}
		if got := authz.IsPending(r); got != tc.isPending {
			t.Errorf("IsPending(%s) = %v", tc.role, got)
		}
	}
}

func TestHasAnyRole(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r = auth.WithTestUser(r, &auth.SessionUser{
		Identity: models.Identity{ID: "u1", Role: models.RoleNurse},
	})

	if !authz.HasAnyRole(r, models.RoleAdmin, models.RoleNurse) {
		t.Error("nurse should match [admin, nurse]")
	}
	if authz.HasAnyRole(r, models.RoleAdmin) {
		t.Error("nurse should not match [admin]")
	}

	anon := httptest.NewRequest("GET", "/", nil)
	if authz.HasAnyRole(anon, models.RolePending) {
		t.Error("anonymous request should match nothing")
	}
}

func TestToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if _, ok := authz.Token(r); ok {
		t.Error("expected no token without a session")
	}

	r = auth.WithTestUser(r, &auth.SessionUser{Token: "tok-1"})
	tok, ok := authz.Token(r)
	if !ok || tok != "tok-1" {
		t.Errorf("Token = %q, ok=%v", tok, ok)
	}
}
